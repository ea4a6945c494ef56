package main

// Canned provider responses used when mocks are enabled. They exercise the
// same parse and validation paths as live responses.

const mockTopicsJSON = `[
  {"title": "Universal Basic Income", "summary": "Whether a guaranteed income floor would reduce poverty without undermining the incentive to work, and how such a program could be financed at national scale.", "confidence": 0.88},
  {"title": "Automation and Employment", "summary": "The pace at which automation displaces existing jobs versus the rate at which new kinds of work appear, and who bears the transition costs in the meantime.", "confidence": 0.81},
  {"title": "Retraining Program Effectiveness", "summary": "Whether publicly funded retraining programs actually move displaced workers into comparable employment, or mainly shift statistics between categories.", "confidence": 0.74}
]`

const mockCitationsJSON = `[
  {"title": "The Economics of a Basic Income", "url": "https://example.org/ubi-economics", "snippet": "A survey of pilot program outcomes across three continents."},
  {"title": "Work After Automation", "url": "https://example.org/work-after-automation", "snippet": "Labor market projections under three automation scenarios."},
  {"title": "What Retraining Can and Cannot Do", "url": "https://example.org/retraining", "snippet": "A critical review of publicly funded retraining evidence."}
]`

const mockTranscript = `Welcome back to the show. Today we are debating universal basic income.
Supporters argue that a guaranteed floor would eliminate extreme poverty because
the evidence from pilot programs shows little reduction in work effort. However,
critics counter that national-scale financing would require tax increases that
pilots never had to model. The research on automation suggests the question will
only grow more urgent as more routine work is displaced.`

package model

const sampleArtifact = `
model:
  kind: logistic_regression
  feature_names: [ValorQuitacao, Atraso, Quant_Pagamentos_Via_Boleto, Quant_Ocorrencia, UF_CE, UF_SP]
  classes: ["0", "1"]
  coefficients:
    - [0.001, -0.05, 0.4, -0.2, 0.3, -0.1]
  intercept: [-0.5]
encoder:
  feature: UF
  categories: [AL, CE, SP]
  handle_unknown: ignore
  drop: first
`

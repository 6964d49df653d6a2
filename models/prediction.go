package models

// ModelType is the kind of upstream model that produced a prediction.
// Scoring resolves the base score differently per type (see StrategyBasic).
type ModelType string

const (
	ModelTypeMultinomial      ModelType = "multinomial"
	ModelTypeRegression       ModelType = "regression"
	ModelTypeClustering       ModelType = "Clustering"
	ModelTypeAnomalyDetection ModelType = "AnomalyDetection"
	ModelTypeDeepLearning     ModelType = "deeplearning"
)

// PredictionResult is the output of the upstream model, treated as a black
// box by this engine.
type PredictionResult struct {
	Type ModelType

	// Multinomial outputs.
	Probability float64
	Label       string
	Response    string

	// Regression / clustering outputs.
	Value   float64
	Cluster string

	// DomainsProbability maps label/offer key to probability, used to score
	// matrix rows against the model output.
	DomainsProbability map[string]float64

	// Features is the customer feature snapshot resolved by the upstream
	// lookup. Owned by the caller; the engine only reads from it.
	Features map[string]any
}

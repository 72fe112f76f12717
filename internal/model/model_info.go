package model

// ModelInfo 模型自检信息
type ModelInfo struct {
	Type             string   `json:"type"`
	Version          string   `json:"version"`
	ClassifierStatus string   `json:"classifier_status"`
	LastTrained      string   `json:"last_trained,omitempty"`
	Accuracy         string   `json:"accuracy"`
	Features         []string `json:"features"`
	TaxonomyVersion  string   `json:"taxonomy_version"`
}

// HealthStatus 健康检查信息
type HealthStatus struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Version     string `json:"version"`
	ModelLoaded bool   `json:"model_loaded"`
	Uptime      string `json:"uptime"`
	Timestamp   string `json:"timestamp"`
}

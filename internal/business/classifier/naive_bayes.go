package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"
)

// ErrEmptyModel 模型文件缺少必要字段
var ErrEmptyModel = errors.New("classifier model is empty")

// Predictor 文本分类器：返回 class → probability
type Predictor interface {
	PredictProba(text string) (map[string]float64, error)
}

// tokenPattern 与训练侧分词一致：至少两个字符的单词
var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// Artifact 导出的多项式朴素贝叶斯模型（TF-IDF 特征）
type Artifact struct {
	Classes        []string       `json:"classes"`
	Vocabulary     map[string]int `json:"vocabulary"`
	IDF            []float64      `json:"idf"`
	ClassLogPrior  []float64      `json:"class_log_prior"`
	FeatureLogProb [][]float64    `json:"feature_log_prob"`
	SublinearTF    bool           `json:"sublinear_tf"`
	TrainedAt      string         `json:"trained_at,omitempty"`
}

// NaiveBayes 推理实现（只读，可并发调用）
type NaiveBayes struct {
	artifact Artifact
}

// Load 从 JSON 文件加载模型
func Load(path string) (*NaiveBayes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read classifier model: %w", err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse classifier model: %w", err)
	}
	return New(a)
}

// New 校验并创建分类器
func New(a Artifact) (*NaiveBayes, error) {
	nClasses := len(a.Classes)
	nFeatures := len(a.IDF)
	if nClasses == 0 || nFeatures == 0 {
		return nil, ErrEmptyModel
	}
	if len(a.ClassLogPrior) != nClasses || len(a.FeatureLogProb) != nClasses {
		return nil, fmt.Errorf("classifier model: expected %d classes in priors and feature probs", nClasses)
	}
	for i, row := range a.FeatureLogProb {
		if len(row) != nFeatures {
			return nil, fmt.Errorf("classifier model: feature_log_prob[%d] has %d features, want %d", i, len(row), nFeatures)
		}
	}
	for term, idx := range a.Vocabulary {
		if idx < 0 || idx >= nFeatures {
			return nil, fmt.Errorf("classifier model: vocabulary %q index %d out of range", term, idx)
		}
	}
	return &NaiveBayes{artifact: a}, nil
}

// TrainedAt 训练时间（模型文件提供时）
func (nb *NaiveBayes) TrainedAt() string {
	return nb.artifact.TrainedAt
}

// Classes 分类标签
func (nb *NaiveBayes) Classes() []string {
	return nb.artifact.Classes
}

// PredictProba 计算各分类概率
func (nb *NaiveBayes) PredictProba(text string) (map[string]float64, error) {
	features := nb.vectorize(text)

	a := nb.artifact
	joint := make([]float64, len(a.Classes))
	for c := range a.Classes {
		sum := a.ClassLogPrior[c]
		for idx, value := range features {
			sum += value * a.FeatureLogProb[c][idx]
		}
		joint[c] = sum
	}

	// log-sum-exp 归一化
	maxLog := math.Inf(-1)
	for _, v := range joint {
		if v > maxLog {
			maxLog = v
		}
	}
	if math.IsInf(maxLog, 0) || math.IsNaN(maxLog) {
		return nil, fmt.Errorf("classifier produced invalid likelihood")
	}

	total := 0.0
	for _, v := range joint {
		total += math.Exp(v - maxLog)
	}

	proba := make(map[string]float64, len(a.Classes))
	for c, name := range a.Classes {
		proba[name] = math.Exp(joint[c]-maxLog) / total
	}
	return proba, nil
}

// vectorize TF-IDF（L2 归一化），返回稀疏向量 index → value
func (nb *NaiveBayes) vectorize(text string) map[int]float64 {
	counts := make(map[int]float64)
	for _, token := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if idx, ok := nb.artifact.Vocabulary[token]; ok {
			counts[idx]++
		}
	}

	norm := 0.0
	for idx, tf := range counts {
		if nb.artifact.SublinearTF {
			tf = 1 + math.Log(tf)
		}
		v := tf * nb.artifact.IDF[idx]
		counts[idx] = v
		norm += v * v
	}

	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range counts {
			counts[idx] /= norm
		}
	}
	return counts
}

package sentiment

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	onnxruntime "github.com/yalue/onnxruntime_go"

	"github.com/rclarke009/news-sentiment-comparison/internal/config"
)

const (
	LabelPositive = "POSITIVE"
	LabelNegative = "NEGATIVE"
	LabelNeutral  = "NEUTRAL"
)

// Result is one local-model verdict, with the label mapped onto the
// same -5..+5 scale the LLM uses so the two are directly comparable.
type Result struct {
	Score      float64
	Label      string
	Confidence float64
}

var neutralResult = Result{Score: 0.0, Label: LabelNeutral, Confidence: 0.0}

var ortInitOnce sync.Once
var ortInitErr error

func initRuntime(libraryPath string) error {
	ortInitOnce.Do(func() {
		if libraryPath != "" {
			onnxruntime.SetSharedLibraryPath(libraryPath)
		}
		ortInitErr = onnxruntime.InitializeEnvironment()
		if ortInitErr != nil {
			ortInitErr = fmt.Errorf("initializing onnx runtime: %w", ortInitErr)
		}
	})
	return ortInitErr
}

// Classifier runs a DistilBERT SST-2 sentiment model exported to ONNX.
// The model emits [NEGATIVE, POSITIVE] logits for a single sequence.
type Classifier struct {
	modelPath string
	tokenizer *tokenizer

	mu sync.Mutex
}

// NewClassifier loads the vocabulary and initializes the runtime. A
// construction failure is the caller's cue to run without the local
// model rather than abort.
func NewClassifier(cfg config.LocalModelConfig) (*Classifier, error) {
	if err := initRuntime(cfg.LibraryPath); err != nil {
		return nil, err
	}

	tok, err := loadTokenizer(cfg.VocabPath)
	if err != nil {
		return nil, fmt.Errorf("loading tokenizer vocab: %w", err)
	}

	return &Classifier{
		modelPath: cfg.ModelPath,
		tokenizer: tok,
	}, nil
}

// Classify scores one piece of text. Inference errors degrade to the
// neutral sentinel so a flaky model never blocks a collection run.
func (c *Classifier) Classify(text string) Result {
	label, confidence, err := c.infer(text)
	if err != nil {
		slog.Error("local sentiment inference failed", "error", err)
		return neutralResult
	}

	return Result{
		Score:      mapToScale(label, confidence),
		Label:      label,
		Confidence: confidence,
	}
}

func (c *Classifier) infer(text string) (string, float64, error) {
	inputIDs, attentionMask := c.tokenizer.encode(text)

	shape := onnxruntime.Shape{1, seqLen}

	inputTensor, err := onnxruntime.NewTensor(shape, inputIDs)
	if err != nil {
		return "", 0, fmt.Errorf("input_ids tensor: %w", err)
	}
	defer inputTensor.Destroy()

	maskTensor, err := onnxruntime.NewTensor(shape, attentionMask)
	if err != nil {
		return "", 0, fmt.Errorf("attention_mask tensor: %w", err)
	}
	defer maskTensor.Destroy()

	outputTensor, err := onnxruntime.NewEmptyTensor[float32](onnxruntime.Shape{1, 2})
	if err != nil {
		return "", 0, fmt.Errorf("output tensor: %w", err)
	}
	defer outputTensor.Destroy()

	c.mu.Lock()
	defer c.mu.Unlock()

	session, err := onnxruntime.NewAdvancedSession(
		c.modelPath,
		[]string{"input_ids", "attention_mask"},
		[]string{"logits"},
		[]onnxruntime.Value{inputTensor, maskTensor},
		[]onnxruntime.Value{outputTensor},
		nil,
	)
	if err != nil {
		return "", 0, fmt.Errorf("creating session: %w", err)
	}
	defer session.Destroy()

	if err := session.Run(); err != nil {
		return "", 0, fmt.Errorf("inference: %w", err)
	}

	logits := outputTensor.GetData()
	if len(logits) != 2 {
		return "", 0, fmt.Errorf("unexpected logits length %d", len(logits))
	}

	probs := softmax(logits)
	if probs[1] >= probs[0] {
		return LabelPositive, float64(probs[1]), nil
	}
	return LabelNegative, float64(probs[0]), nil
}

func softmax(logits []float32) []float32 {
	max := logits[0]
	for _, v := range logits {
		if v > max {
			max = v
		}
	}

	out := make([]float32, len(logits))
	var sum float32
	for i, v := range logits {
		out[i] = float32(math.Exp(float64(v - max)))
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// mapToScale projects a binary label plus confidence onto the -5..+5
// uplift scale. Confident verdicts land near the extremes, hesitant
// ones near the middle.
func mapToScale(label string, confidence float64) float64 {
	var magnitude float64
	switch {
	case confidence >= 0.9:
		magnitude = 4.5
	case confidence >= 0.7:
		magnitude = 3.0
	default:
		magnitude = 1.5
	}

	switch label {
	case LabelPositive:
		return magnitude
	case LabelNegative:
		return -magnitude
	default:
		return 0.0
	}
}

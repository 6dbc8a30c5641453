package llm

import "context"

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response  string
	Deltas    []string
	Embedding []float32
	Err       error

	// LastRequest guarda la ultima request recibida, para asserts.
	LastRequest ChatRequest
}

func (m *MockClient) Complete(ctx context.Context, req ChatRequest) (string, error) {
	m.LastRequest = req
	return m.Response, m.Err
}

func (m *MockClient) Stream(ctx context.Context, req ChatRequest, onDelta func(string)) (string, error) {
	m.LastRequest = req
	if m.Err != nil {
		return "", m.Err
	}
	deltas := m.Deltas
	if len(deltas) == 0 && m.Response != "" {
		deltas = []string{m.Response}
	}
	full := ""
	for _, d := range deltas {
		full += d
		if onDelta != nil {
			onDelta(d)
		}
	}
	return full, nil
}

func (m *MockClient) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Embedding != nil {
		return m.Embedding, nil
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

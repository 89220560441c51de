package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mockmate/interview-api/internal/domain"
)

// MockCompleter mocks the Completer interface and records every outbound
// transcript so tests can inspect the derived view sent to the model.
type MockCompleter struct {
	mock.Mock
	transcripts [][]domain.Turn
}

func (m *MockCompleter) Complete(ctx context.Context, controlPrompt string, transcript []domain.Turn) (*domain.Reply, error) {
	m.transcripts = append(m.transcripts, transcript)
	args := m.Called(ctx, controlPrompt, transcript)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reply), args.Error(1)
}

// lastOutbound returns the transcript of the most recent Complete call.
func (m *MockCompleter) lastOutbound() []domain.Turn {
	if len(m.transcripts) == 0 {
		return nil
	}
	return m.transcripts[len(m.transcripts)-1]
}

package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/volatility-agent/internal/core"
	"github.com/sevigo/volatility-agent/mocks"
)

func TestBuyerJob_Handle(t *testing.T) {
	tests := []struct {
		name      string
		entry     *core.QueueEntry
		setup     func(client *mocks.MockProtocolClient, job *core.Job)
		want      core.Action
		wantError string
	}{
		{
			name: "pays negotiated job",
			entry: &core.QueueEntry{
				Job:  &core.Job{ID: 1, Phase: core.PhaseNegotiation, Price: 0.5},
				Memo: &core.Memo{NextPhase: core.PhaseTransaction},
			},
			setup: func(client *mocks.MockProtocolClient, job *core.Job) {
				client.EXPECT().Pay(gomock.Any(), job, 0.5).Return(nil)
			},
			want: core.ActionPaid,
		},
		{
			name: "payment failure",
			entry: &core.QueueEntry{
				Job:  &core.Job{ID: 2, Phase: core.PhaseNegotiation, Price: 1},
				Memo: &core.Memo{NextPhase: core.PhaseTransaction},
			},
			setup: func(client *mocks.MockProtocolClient, job *core.Job) {
				client.EXPECT().Pay(gomock.Any(), job, 1.0).Return(errors.New("insufficient funds"))
			},
			want:      core.ActionFailed,
			wantError: "insufficient funds",
		},
		{
			name: "approves delivered job",
			entry: &core.QueueEntry{
				Job:  &core.Job{ID: 3, Phase: core.PhaseEvaluation},
				Memo: &core.Memo{NextPhase: core.PhaseCompleted},
			},
			setup: func(client *mocks.MockProtocolClient, job *core.Job) {
				client.EXPECT().Evaluate(gomock.Any(), job, true, gomock.Any()).Return(nil)
			},
			want: core.ActionEvaluated,
		},
		{
			name: "reads completed deliverable",
			entry: &core.QueueEntry{
				Job: &core.Job{
					ID:          4,
					Phase:       core.PhaseCompleted,
					Deliverable: `{"type":"object","value":{"status":"success","message":{"volatility":0.42}}}`,
				},
			},
			want: core.ActionCompleted,
		},
		{
			name: "completed with unreadable deliverable",
			entry: &core.QueueEntry{
				Job: &core.Job{ID: 5, Phase: core.PhaseCompleted, Deliverable: "not json"},
			},
			want: core.ActionCompleted,
		},
		{
			name:  "rejected",
			entry: &core.QueueEntry{Job: &core.Job{ID: 6, Phase: core.PhaseRejected}},
			want:  core.ActionRejected,
		},
		{
			name: "request is the seller's turn",
			entry: &core.QueueEntry{
				Job:  &core.Job{ID: 7, Phase: core.PhaseRequest},
				Memo: &core.Memo{NextPhase: core.PhaseNegotiation},
			},
			want: core.ActionIgnored,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mocks.NewMockProtocolClient(ctrl)
			store := mocks.NewMockStore(ctrl)
			if tt.setup != nil {
				tt.setup(client, tt.entry.Job)
			}
			if tt.want != "" {
				store.EXPECT().SaveOutcome(gomock.Any(), actionIs(tt.want)).Return(nil)
			}

			err := NewBuyerJob(client, store, discardLogger()).Handle(context.Background(), tt.entry)
			if tt.wantError != "" {
				assert.ErrorContains(t, err, tt.wantError)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBuyerJob_WithoutStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockProtocolClient(ctrl)
	job := &core.Job{ID: 8, Phase: core.PhaseNegotiation, Price: 2}
	client.EXPECT().Pay(gomock.Any(), job, 2.0).Return(nil)

	entry := &core.QueueEntry{Job: job, Memo: &core.Memo{NextPhase: core.PhaseTransaction}}
	assert.NoError(t, NewBuyerJob(client, nil, discardLogger()).Handle(context.Background(), entry))
}

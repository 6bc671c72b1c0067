package pipeline

import "github.com/kaljuvee/postwave/pkg/models"

// Stage names one phase of the pipeline.
type Stage string

const (
	StageFetch    Stage = "fetch"
	StageGenerate Stage = "generate"
	StageApproval Stage = "approval"
	StagePublish  Stage = "publish"
	StageDone     Stage = "done"
)

// NextStage is the routing function for a run: given the stage that just ran
// and the run's status, it returns the stage that should run next. It is pure
// and drives all conditional branching in the engine.
func NextStage(current Stage, run *models.RunState) Stage {
	switch current {
	case StageFetch:
		if run.Status == models.RunStatusFailed {
			return StageDone
		}

		return StageGenerate
	case StageGenerate:
		if run.Status == models.RunStatusFailed {
			return StageDone
		}

		return StageApproval
	case StageApproval:
		if run.Status == models.RunStatusApproved {
			return StagePublish
		}

		return StageDone
	case StagePublish:
		return StageDone
	default:
		return StageDone
	}
}

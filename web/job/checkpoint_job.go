package job

import (
	"github.com/kinocourses/kinocourses/database"
	"github.com/kinocourses/kinocourses/util/common"
	"github.com/kinocourses/kinocourses/logger"
)

// CheckpointJob folds the SQLite write-ahead log back into the database file.
type CheckpointJob struct{}

func NewCheckpointJob() *CheckpointJob {
	return new(CheckpointJob)
}

// Run is called by the cron scheduler.
func (j *CheckpointJob) Run() {
	defer common.Recover("checkpoint job")
	if err := database.Checkpoint(); err != nil {
		logger.Warning("checkpoint job err:", err)
	}
}

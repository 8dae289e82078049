package feed

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/mediamux/mediamux/model"
	"github.com/mediamux/mediamux/utils"
	Logger "github.com/mediamux/mediamux/utils/log"
)

// Recorder appends immutable activity records for qualifying mutations.
//
// Consistency contract: callers must invoke Record inside the same
// transaction as the domain mutation that triggered it. If the append fails
// the whole transaction rolls back, because a mutation without its activity
// silently breaks feed completeness. RecordBestEffort is the documented
// degraded fallback for call sites that cannot run transactionally: one
// local retry, then log-and-continue with a counter bump so the gap is at
// least observable.
type Recorder struct{}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// RecordInput describes one activity append. ContentID and the three
// reference ids are optional, which ones are set depends on the type.
type RecordInput struct {
	ActorID      string
	ActivityType string
	ContentID    *string
	RatingID     *string
	ReviewID     *string
	ListID       *string
}

// Record appends one activity row using tx. The insert always succeeds
// unless the actor reference is invalid or the store itself fails.
func (r *Recorder) Record(tx *gorm.DB, input RecordInput) (*model.Activity, error) {
	activity := model.Activity{
		Id:           uuid.New().String(),
		UserID:       input.ActorID,
		ContentID:    input.ContentID,
		ActivityType: input.ActivityType,
		RatingID:     input.RatingID,
		ReviewID:     input.ReviewID,
		ListID:       input.ListID,
	}
	if err := tx.Create(&activity).Error; err != nil {
		return nil, errors.Wrap(err, "fail to append activity record")
	}
	return &activity, nil
}

// RecordBestEffort appends outside any caller transaction, retrying once
// before giving up. A final failure is logged and counted but not returned,
// the caller's mutation has already been committed at that point.
func (r *Recorder) RecordBestEffort(db *gorm.DB, input RecordInput) *model.Activity {
	activity, err := r.Record(db, input)
	if err == nil {
		return activity
	}
	activity, err = r.Record(db, input)
	if err == nil {
		return activity
	}

	Logger.Log.Error("activity append failed after retry, feed is missing an entry: ", err)
	utils.EmitCounter(utils.MetricActivityAppendFailure, []string{"activity_type:" + input.ActivityType})
	return nil
}

package authz

// DeliverableStatus is the deliverable lifecycle state.
type DeliverableStatus string

const (
	DeliverableNotStarted         DeliverableStatus = "NOT_STARTED"
	DeliverableInProgress         DeliverableStatus = "IN_PROGRESS"
	DeliverableSubmittedForReview DeliverableStatus = "SUBMITTED_FOR_REVIEW"
	DeliverableReviewComplete     DeliverableStatus = "REVIEW_COMPLETE"
	DeliverableReturned           DeliverableStatus = "RETURNED_FOR_MORE_WORK"
	DeliverableDelivered          DeliverableStatus = "DELIVERED"
)

func (s DeliverableStatus) known() bool {
	switch s {
	case DeliverableNotStarted, DeliverableInProgress, DeliverableSubmittedForReview,
		DeliverableReviewComplete, DeliverableReturned, DeliverableDelivered:
		return true
	}
	return false
}

// AssessmentState is the assessed/unassessed state of one KPI or
// quality standard linked to a deliverable. CriteriaMet is nil until
// an assessment has been recorded; the verdict itself does not gate
// delivery, only its presence does.
type AssessmentState struct {
	CriteriaMet *bool
}

// DeliverableState is the slice of a deliverable record the guards
// evaluate, including the assessment state of every linked KPI and
// quality standard.
type DeliverableState struct {
	Status      DeliverableStatus
	CreatedBy   int64
	Assessments []AssessmentState
}

// AssessmentsComplete reports whether every linked assessment has been
// recorded. A deliverable with no linked criteria is trivially
// complete.
func (d DeliverableState) AssessmentsComplete() bool {
	for _, a := range d.Assessments {
		if a.CriteriaMet == nil {
			return false
		}
	}
	return true
}

// CanSubmitForReview reports whether the actor may move the
// deliverable into review. Only in-progress and returned work is
// submittable.
func CanSubmitForReview(actor Actor, d DeliverableState) bool {
	if d.Status != DeliverableInProgress && d.Status != DeliverableReturned {
		return false
	}
	if actor.IsElevatedProjectRole() {
		return true
	}
	return actor.Owns(d.CreatedBy) && CanSubmitDeliverable(actor.EffectiveRole)
}

// CanReviewDeliverable reports whether the actor may complete or
// return the review, under the project's approval authority for
// deliverables. Review applies only while the deliverable is awaiting
// it.
func CanReviewDeliverable(actor Actor, settings *Settings, d DeliverableState) bool {
	if d.Status != DeliverableSubmittedForReview {
		return false
	}
	return CanApprove(settings, EntityDeliverable, actor.EffectiveRole, ApprovalContext{})
}

// CanMarkDelivered reports whether the deliverable may be closed out.
// Delivery is blocked, not skipped, until every linked KPI and quality
// standard has a recorded assessment.
func CanMarkDelivered(actor Actor, d DeliverableState) bool {
	if d.Status != DeliverableReviewComplete {
		return false
	}
	if !CanDeliverDeliverables(actor.EffectiveRole) {
		return false
	}
	return d.AssessmentsComplete()
}

// CanEditDeliverableRecord reports whether this specific deliverable
// may be edited now. Delivered work is a closed record; only elevated
// roles may correct it.
func CanEditDeliverableRecord(actor Actor, d DeliverableState) bool {
	if !d.Status.known() {
		return false
	}
	if !CanEditDeliverable(actor.EffectiveRole) {
		return false
	}
	if d.Status == DeliverableDelivered {
		return actor.IsElevatedProjectRole()
	}
	return actor.IsElevatedProjectRole() || actor.Owns(d.CreatedBy)
}

// CanDeleteDeliverableRecord mirrors CanEditDeliverableRecord over the
// delete permission.
func CanDeleteDeliverableRecord(actor Actor, d DeliverableState) bool {
	if !d.Status.known() {
		return false
	}
	if !CanDeleteDeliverable(actor.EffectiveRole) {
		return false
	}
	if d.Status == DeliverableDelivered {
		return actor.IsElevatedProjectRole()
	}
	return actor.IsElevatedProjectRole() || actor.Owns(d.CreatedBy)
}

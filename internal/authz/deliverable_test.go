package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestCanSubmitForReview(t *testing.T) {
	owner := actorWithRole(10, RoleContributor)
	pm := actorWithRole(20, RoleSupplierPM)

	assert.True(t, CanSubmitForReview(owner, DeliverableState{Status: DeliverableInProgress, CreatedBy: 10}))
	assert.True(t, CanSubmitForReview(owner, DeliverableState{Status: DeliverableReturned, CreatedBy: 10}))
	assert.False(t, CanSubmitForReview(owner, DeliverableState{Status: DeliverableNotStarted, CreatedBy: 10}))
	assert.False(t, CanSubmitForReview(owner, DeliverableState{Status: DeliverableInProgress, CreatedBy: 99}))
	assert.True(t, CanSubmitForReview(pm, DeliverableState{Status: DeliverableInProgress, CreatedBy: 99}))
}

func TestCanReviewDeliverable(t *testing.T) {
	inReview := DeliverableState{Status: DeliverableSubmittedForReview}

	assert.True(t, CanReviewDeliverable(actorWithRole(1, RoleCustomerPM), nil, inReview))
	assert.True(t, CanReviewDeliverable(actorWithRole(1, RoleSupplierPM), nil, inReview))
	assert.False(t, CanReviewDeliverable(actorWithRole(1, RoleContributor), nil, inReview))

	customerOnly := &Settings{Approvals: map[Entity]AuthorityMode{EntityDeliverable: AuthorityCustomerOnly}}
	assert.True(t, CanReviewDeliverable(actorWithRole(1, RoleCustomerPM), customerOnly, inReview))
	assert.False(t, CanReviewDeliverable(actorWithRole(1, RoleSupplierPM), customerOnly, inReview))

	// Review applies only while awaiting it.
	assert.False(t, CanReviewDeliverable(actorWithRole(1, RoleCustomerPM), nil, DeliverableState{Status: DeliverableInProgress}))
	assert.False(t, CanReviewDeliverable(actorWithRole(1, RoleCustomerPM), nil, DeliverableState{Status: DeliverableDelivered}))
}

func TestCanMarkDeliveredBlockedOnAssessments(t *testing.T) {
	pm := actorWithRole(20, RoleSupplierPM)

	// Two linked KPIs, one assessed: delivery is blocked.
	partial := DeliverableState{
		Status: DeliverableReviewComplete,
		Assessments: []AssessmentState{
			{CriteriaMet: boolPtr(true)},
			{CriteriaMet: nil},
		},
	}
	assert.False(t, CanMarkDelivered(pm, partial))

	// Both assessed, verdict irrelevant: delivery is open.
	complete := DeliverableState{
		Status: DeliverableReviewComplete,
		Assessments: []AssessmentState{
			{CriteriaMet: boolPtr(true)},
			{CriteriaMet: boolPtr(false)},
		},
	}
	assert.True(t, CanMarkDelivered(pm, complete))

	// No linked criteria is trivially complete.
	assert.True(t, CanMarkDelivered(pm, DeliverableState{Status: DeliverableReviewComplete}))

	// Wrong status or role blocks regardless of assessments.
	assert.False(t, CanMarkDelivered(pm, DeliverableState{Status: DeliverableSubmittedForReview}))
	assert.False(t, CanMarkDelivered(actorWithRole(1, RoleCustomerPM), complete))
}

func TestDeliverableRecordGuards(t *testing.T) {
	owner := actorWithRole(10, RoleContributor)
	pm := actorWithRole(20, RoleSupplierPM)

	assert.True(t, CanEditDeliverableRecord(owner, DeliverableState{Status: DeliverableInProgress, CreatedBy: 10}))
	assert.False(t, CanEditDeliverableRecord(owner, DeliverableState{Status: DeliverableDelivered, CreatedBy: 10}))
	assert.True(t, CanEditDeliverableRecord(pm, DeliverableState{Status: DeliverableDelivered, CreatedBy: 10}))
	assert.False(t, CanEditDeliverableRecord(pm, DeliverableState{Status: DeliverableStatus("SHIPPED"), CreatedBy: 10}))
	assert.False(t, CanDeleteDeliverableRecord(owner, DeliverableState{Status: DeliverableInProgress, CreatedBy: 10}))
	assert.True(t, CanDeleteDeliverableRecord(pm, DeliverableState{Status: DeliverableInProgress, CreatedBy: 10}))
}

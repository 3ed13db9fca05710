package jobs

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tracklane/tracklane/internal/authz"
)

// The digest counts rows by the status values the repositories persist,
// which are the workflow constants verbatim.
func TestDigestQueryMatchesPersistedStatuses(t *testing.T) {
	assert.Contains(t, digestQuery, fmt.Sprintf("e.status = '%s'", authz.ExpenseSubmitted))
	assert.Contains(t, digestQuery, fmt.Sprintf("t.status = '%s'", authz.TimesheetSubmitted))
	assert.Contains(t, digestQuery, fmt.Sprintf("d.status = '%s'", authz.DeliverableSubmittedForReview))
	assert.NotContains(t, digestQuery, "IN_REVIEW'")
}

func TestProjectDigestTotal(t *testing.T) {
	digest := ProjectDigest{Expenses: 2, Timesheets: 3, Deliverables: 1}
	assert.Equal(t, int64(6), digest.Total())

	assert.Zero(t, ProjectDigest{}.Total())
}

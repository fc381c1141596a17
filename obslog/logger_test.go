package obslog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gocausal/docalc/obslog"
)

func TestWithQueryID_StampsDistinctIDs(t *testing.T) {
	base := obslog.Noop()
	ctx1, l1 := obslog.WithQueryID(context.Background(), base)
	ctx2, l2 := obslog.WithQueryID(context.Background(), base)

	id1 := obslog.QueryID(ctx1)
	id2 := obslog.QueryID(ctx2)
	assert.NotEmpty(t, id1)
	assert.NotEmpty(t, id2)
	assert.NotEqual(t, id1, id2)

	// Both loggers must remain independently usable even though neither
	// writes anywhere observable with Noop.
	l1.Info("first")
	l2.Warn("second")
}

func TestQueryID_EmptyWithoutStamp(t *testing.T) {
	assert.Empty(t, obslog.QueryID(context.Background()))
}

package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisplayStatus(t *testing.T) {
	require.Equal(t, PaymentStatusCompleted, DisplayStatus("completed"))
	require.Equal(t, "Completed", DisplayStatus("Completed"))
	require.Equal(t, "COMPLETED", DisplayStatus("COMPLETED"))
	require.Equal(t, "failed", DisplayStatus("failed"))
	require.Equal(t, "", DisplayStatus(""))
}

package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrackableLink_StripsExistingQuery(t *testing.T) {
	got := trackableLink("https://cruisytravel.com/tour/sunset-sail/?fbclid=xyz&page=2", "alex-travels")
	require.Equal(t, "https://cruisytravel.com/tour/sunset-sail/?ref=alex-travels&utm_source=ambassador", got)
}

func TestTrackableLink_PlainURL(t *testing.T) {
	got := trackableLink("https://cruisytravel.com/tour/sunset-sail/", "alex-travels")
	require.Equal(t, "https://cruisytravel.com/tour/sunset-sail/?ref=alex-travels&utm_source=ambassador", got)
}

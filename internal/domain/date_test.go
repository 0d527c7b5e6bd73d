package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSONRoundTrip(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"1967-03-25"`), &d))
	assert.Equal(t, NewDate(1967, time.March, 25), d)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1967-03-25"`, string(data))
}

func TestDate_UnmarshalNull(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())
}

func TestDate_UnmarshalInvalid(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"25.03.1967"`), &d))
}

func TestDate_ScanTime(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2000, time.January, 2, 15, 4, 5, 0, time.UTC)))
	assert.Equal(t, "2000-01-02", d.String())
}

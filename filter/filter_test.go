package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmoller/trialscope/bungie"
)

func testActivity(kills, deaths, standing float64, period time.Time) bungie.Activity {
	return bungie.Activity{
		Period: period,
		ActivityDetails: bungie.ActivityDetails{
			InstanceID: "12345",
			Mode:       69,
		},
		Values: map[string]bungie.ActivityStat{
			"kills":    {Basic: bungie.ActivityStatValue{Value: kills}},
			"deaths":   {Basic: bungie.ActivityStatValue{Value: deaths}},
			"standing": {Basic: bungie.ActivityStatValue{Value: standing}},
		},
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		wantErr    bool
	}{
		{"simple comparison", "kills > 10", false},
		{"boolean field", "victory", false},
		{"compound", "kills >= 10 && deaths < 5 && victory", false},
		{"helper function", "period > daysAgo(7)", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"unbalanced", "kills > (", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.ErrorAs(t, err, &compErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expression, f.Expression())
		})
	}
}

func TestMatch(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name       string
		expression string
		activity   bungie.Activity
		expected   bool
	}{
		{
			name:       "kills threshold met",
			expression: "kills >= 10",
			activity:   testActivity(12, 3, 0, now),
			expected:   true,
		},
		{
			name:       "kills threshold not met",
			expression: "kills >= 10",
			activity:   testActivity(4, 3, 0, now),
			expected:   false,
		},
		{
			name:       "victory",
			expression: "victory",
			activity:   testActivity(12, 3, 0, now),
			expected:   true,
		},
		{
			name:       "defeat",
			expression: "victory",
			activity:   testActivity(12, 3, 1, now),
			expected:   false,
		},
		{
			name:       "kd ratio",
			expression: "kd >= 2.0",
			activity:   testActivity(9, 3, 0, now),
			expected:   true,
		},
		{
			name:       "recent activity",
			expression: "period > daysAgo(7)",
			activity:   testActivity(1, 1, 0, now.AddDate(0, 0, -2)),
			expected:   true,
		},
		{
			name:       "old activity",
			expression: "period > daysAgo(7)",
			activity:   testActivity(1, 1, 0, now.AddDate(0, 0, -30)),
			expected:   false,
		},
		{
			name:       "trials mode",
			expression: "mode == 69",
			activity:   testActivity(1, 1, 0, now),
			expected:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			require.NoError(t, err)

			matched, err := f.Match(tt.activity)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, matched)
		})
	}
}

func TestApply(t *testing.T) {
	now := time.Now()
	activities := []bungie.Activity{
		testActivity(12, 3, 0, now),
		testActivity(2, 8, 1, now),
		testActivity(15, 1, 0, now),
	}

	f, err := Compile("victory && kills >= 10")
	require.NoError(t, err)

	matched, err := f.Apply(activities)
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, 12, matched[0].Kills())
	assert.Equal(t, 15, matched[1].Kills())
}

func TestApplyNoMatches(t *testing.T) {
	f, err := Compile("kills > 100")
	require.NoError(t, err)

	matched, err := f.Apply([]bungie.Activity{testActivity(1, 1, 0, time.Now())})
	require.NoError(t, err)
	assert.Empty(t, matched)
}

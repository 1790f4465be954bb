package report

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"funnelreport/internal/pivot"
)

func TestCategoryProfile(t *testing.T) {
	profile := CategoryProfile()

	assert.Equal(t, "category", profile.Name)
	assert.Equal(t, "Export", profile.SourceSheet)
	assert.Equal(t, "Category Report", profile.OutputSheet)
	assert.Equal(t, CategoryKeyColumn, profile.Spec.KeyColumn)
	assert.Equal(t, CategoryKeyColumn, profile.Spec.RowLabel)

	assert.Len(t, profile.Spec.MetricOrder, 18)
	assert.Equal(t, "[TopLine_Revenue]", profile.Spec.MetricOrder[0])
	assert.Equal(t, "[Reg_Refund_Amount]", profile.Spec.MetricOrder[17])

	assert.Len(t, profile.Spec.EntityOrder, 10)
	assert.Equal(t, "Beauty and Health", profile.Spec.EntityOrder[0])
	assert.Equal(t, "Sports", profile.Spec.EntityOrder[9])

	require.NotNil(t, profile.Spec.Derived)
	assert.Equal(t, "Edu+Img", profile.Spec.Derived.Name)
	assert.Equal(t, "Education", profile.Spec.Derived.SourceA)
	assert.Equal(t, "Images", profile.Spec.Derived.SourceB)
	assert.Equal(t, "Images", profile.Spec.Derived.InsertAfter)
}

func TestServicesProfile(t *testing.T) {
	profile := ServicesProfile()

	assert.Equal(t, "services", profile.Name)
	assert.Equal(t, "Services Report", profile.OutputSheet)
	assert.Equal(t, ServiceKeyColumn, profile.Spec.KeyColumn)

	assert.Len(t, profile.Spec.MetricOrder, 18)
	assert.Len(t, profile.Spec.EntityOrder, 13)
	assert.Equal(t, "IntimaX", profile.Spec.EntityOrder[0])
	assert.Equal(t, "Smile & Learn", profile.Spec.EntityOrder[12])

	assert.Nil(t, profile.Spec.Derived)
}

// Both built-in profiles must produce valid transformers.
func TestProfiles_SpecsAreValid(t *testing.T) {
	for _, profile := range []Profile{CategoryProfile(), ServicesProfile()} {
		t.Run(profile.Name, func(t *testing.T) {
			_, err := pivot.NewTransformer(slog.Default(), profile.Spec)
			require.NoError(t, err)
		})
	}
}

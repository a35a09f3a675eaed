package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
	"github.com/EarneyGit/restaurent-kockraco-sub000/pkg/types"
)

func TestDayRow_ToDomain(t *testing.T) {
	row := dayRow{
		Weekday:           "monday",
		CollectionAllowed: true,
		DeliveryAllowed:   true,
		DefaultStart:      "11:45",
		DefaultEnd:        "21:50",
		BreakStart:        "15:00",
		BreakEnd:          "16:00",
		Collection:        serviceRow{LeadMinutes: 15},
		Delivery:          serviceRow{LeadMinutes: 40, UseCustom: true, CustomStart: "17:00", CustomEnd: "21:00"},
	}

	day := row.toDomain()
	require.NoError(t, day.Validate())

	assert.True(t, day.IsAllowed(domain.ServiceTypeCollection))
	assert.False(t, day.IsAllowed(domain.ServiceTypeTableOrdering))
	require.NotNil(t, day.BreakWindow)
	assert.Equal(t, types.TimeString("16:00"), day.BreakWindow.End)
	assert.Equal(t, types.TimeString("17:00"), day.EffectiveWindow(domain.ServiceTypeDelivery).Start)
	assert.Equal(t, 40, day.Delivery.LeadTimeMinutes)
}

func TestDayRow_ToDomainWithoutBreak(t *testing.T) {
	row := dayRow{DefaultStart: "10:00", DefaultEnd: "22:00"}
	assert.Nil(t, row.toDomain().BreakWindow)
}

func TestDayRow_HalfConfiguredBreakIsInvalid(t *testing.T) {
	row := dayRow{DefaultStart: "10:00", DefaultEnd: "22:00", BreakStart: "15:00"}

	day := row.toDomain()
	require.NotNil(t, day.BreakWindow)
	assert.ErrorIs(t, day.Validate(), domain.ErrConfigurationInvalid)
}

package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeSlotRoundTrip(t *testing.T) {
	const slotsPerDay = 6
	for day := 0; day < 5; day++ {
		for slot := 0; slot < slotsPerDay; slot++ {
			encoded := EncodeSlot(day, slot, slotsPerDay)
			gotDay, gotSlot := DecodeSlot(encoded, slotsPerDay)
			assert.Equal(t, day, gotDay)
			assert.Equal(t, slot, gotSlot)
		}
	}
}

package provider

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateKey_Path(t *testing.T) {
	assert.Equal(t, "2010/06/25.xml", DateKey{Year: 2010, Month: 6, Day: 25}.Path())
	assert.Equal(t, "2010/12/31.xml", DateKey{Year: 2010, Month: 12, Day: 31}.Path())
	assert.Equal(t, "999/10/10.xml", DateKey{Year: 999, Month: 10, Day: 10}.Path())

	for v := 1; v <= 9; v++ {
		t.Run(fmt.Sprintf("pads %d", v), func(t *testing.T) {
			assert.Equal(t, fmt.Sprintf("2011/0%d/15.xml", v), DateKey{Year: 2011, Month: v, Day: 15}.Path())
			assert.Equal(t, fmt.Sprintf("2011/11/0%d.xml", v), DateKey{Year: 2011, Month: 11, Day: v}.Path())
		})
	}

	// no calendar validation
	assert.Equal(t, "2011/13/32.xml", DateKey{Year: 2011, Month: 13, Day: 32}.Path())
}

func TestDateKey_String(t *testing.T) {
	assert.Equal(t, "2010-06-05", DateKey{Year: 2010, Month: 6, Day: 5}.String())
}

func TestDateOf(t *testing.T) {
	d := DateOf(time.Date(2010, time.June, 25, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, DateKey{Year: 2010, Month: 6, Day: 25}, d)
}

func TestParseDateKey(t *testing.T) {
	d, err := ParseDateKey("2010-06-25")
	require.NoError(t, err)
	assert.Equal(t, DateKey{Year: 2010, Month: 6, Day: 25}, d)

	for _, in := range []string{"", "2010/06/25", "2010-6-25", "25-06-2010", "2010-02-30"} {
		_, err := ParseDateKey(in)
		assert.Error(t, err, in)
	}
}

package duration_test

import (
	"testing"

	"github.com/zephyrtronium/ul4"
	_ "github.com/zephyrtronium/ul4/coreext/duration" // side effects
	"github.com/zephyrtronium/ul4/testutils"
)

func TestMethods(t *testing.T) {
	testutils.CheckMethods(t, ul4.TimeDelta{}, []string{"days", "seconds", "microseconds", "total_seconds"})
	testutils.CheckMethods(t, ul4.MonthDelta(0), []string{"months"})
}

func TestDeltaMethods(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"days":         {Source: `[[return, [call, [attr, [call, [var, timedelta], 2, 30], days]]]]`, Pass: testutils.PassEqual(int64(2))},
		"seconds":      {Source: `[[return, [call, [attr, [call, [var, timedelta], 0, 90061], seconds]]]]`, Pass: testutils.PassEqual(int64(3661))},
		"rollover":     {Source: `[[return, [call, [attr, [call, [var, timedelta], 0, 90061], days]]]]`, Pass: testutils.PassEqual(int64(1))},
		"negative":     {Source: `[[return, [list, [call, [attr, [call, [var, timedelta], 0, -1], days]], [call, [attr, [call, [var, timedelta], 0, -1], seconds]]]]]`, Pass: testutils.PassEqual(ul4.NewList(int64(-1), int64(86399)))},
		"microseconds": {Source: `[[return, [call, [attr, [call, [var, timedelta], 0, 0, 1500000], microseconds]]]]`, Pass: testutils.PassEqual(int64(500000))},
		"total":        {Source: `[[return, [call, [attr, [call, [var, timedelta], 1, 1, 500000], total_seconds]]]]`, Pass: testutils.PassEqual(86401.5)},
		"months":       {Source: `[[return, [call, [attr, [call, [var, monthdelta], 14], months]]]]`, Pass: testutils.PassEqual(int64(14))},
		"extra":        {Source: `[[return, [call, [attr, [call, [var, timedelta], 1], days], 1]]]`, Pass: testutils.PassError(new(*ul4.ArgumentError))},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestDeltaMethods"))
	}
}

package session

import (
	"testing"
	"time"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		at   time.Time
		want string
	}{
		{at: now.Add(-30 * time.Second), want: "刚刚"},
		{at: now.Add(5 * time.Second), want: "刚刚"},
		{at: now.Add(-59 * time.Minute), want: "59分钟前"},
		{at: now.Add(-60 * time.Minute), want: "1小时前"},
		{at: now.Add(-23*time.Hour - 59*time.Minute), want: "23小时前"},
		{at: now.Add(-24 * time.Hour), want: "1天前"},
		{at: now.Add(-6 * 24 * time.Hour), want: "6天前"},
		{at: now.Add(-7 * 24 * time.Hour), want: "2024/6/8"},
		{at: time.Time{}, want: ""},
	}
	for _, tc := range cases {
		if got := RelativeTime(tc.at, now); got != tc.want {
			t.Fatalf("RelativeTime(%v) = %q, want %q", tc.at, got, tc.want)
		}
	}
}

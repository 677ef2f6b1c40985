package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ucCalendar "github.com/BruksfildServices01/booking-calendar/internal/usecase/calendar"
)

const sample = `[
	{"id":"a","date":"2026-10-16","start_time":"09:00","end_time":"10:00","client_name":"A","status":"new"},
	{"id":"b","date":"2026-10-16","start_time":"09:30","end_time":"11:00","client_name":"B","status":"confirmed"},
	{"id":"c","date":"2026-10-17","start_time":"09:00","end_time":"10:00","client_name":"C","status":"new"},
	{"id":"d","date":"2026-10-16","start_time":"soon","end_time":"","client_name":"D","status":"new"}
]`

func TestReadAppointments(t *testing.T) {
	apps, err := readAppointments(strings.NewReader(sample), "-")
	require.NoError(t, err)
	require.Len(t, apps, 4)
	assert.Equal(t, "b", apps[1].ID)

	_, err = readAppointments(strings.NewReader("{"), "-")
	assert.Error(t, err)
}

func TestPrintDayView(t *testing.T) {
	apps, err := readAppointments(strings.NewReader(sample), "-")
	require.NoError(t, err)

	day := time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)
	view := ucCalendar.NewDayView(0, day, day, apps[:2], 96)
	view.Unplaced = append(view.Unplaced, ucCalendar.NewDayView(0, day, day, apps[3:], 96).Unplaced...)

	var out bytes.Buffer
	require.NoError(t, printDayView(&out, view, false))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[1], "LANE 0")
	assert.True(t, strings.HasPrefix(lines[2], "09:00"))
	assert.Contains(t, lines[2], "a 09:00-10:00")
	assert.Contains(t, lines[2], "b 09:30-11:00")
	assert.True(t, strings.HasPrefix(lines[3], "10:00"))
	assert.Contains(t, lines[3], "| b")
	assert.Equal(t, "unplaced: d soon-", lines[4])
}

func TestPrintDayViewAllHours(t *testing.T) {
	day := time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)
	view := ucCalendar.NewDayView(0, day, day, nil, 96)

	var out bytes.Buffer
	require.NoError(t, printDayView(&out, view, true))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 2+24)
}

package proto

import "time"

// Log is a single row of a server-side log-stream (ServerCodeLog) block.
type Log struct {
	Time       time.Time
	TimeMicro  uint32
	Host       string
	QueryID    string
	ThreadID   uint64
	Priority   int8
	Source     string
	Text       string
}

// Logs decodes the ServerCodeLog packet's block, whose columns are
// event_time, event_time_microseconds, host_name, query_id, thread_id,
// priority, source, text.
type Logs struct {
	Time      *ColDateTime
	TimeMicro *ColNum[uint32]
	Host      *ColStr
	QueryID   *ColStr
	ThreadID  *ColNum[uint64]
	Priority  *ColNum[int8]
	Source    *ColStr
	Text      *ColStr
}

// NewLogs constructs a Logs ready to decode.
func NewLogs() *Logs {
	return &Logs{
		Time:      new(ColDateTime),
		TimeMicro: ColUInt32(),
		Host:      new(ColStr),
		QueryID:   new(ColStr),
		ThreadID:  ColUInt64(),
		Priority:  ColInt8(),
		Source:    new(ColStr),
		Text:      new(ColStr),
	}
}

// Result resolves Logs' columns by name for Block.DecodeBlock.
func (l *Logs) Result() Result {
	return namedColumns{
		"event_time":              l.Time,
		"event_time_microseconds": l.TimeMicro,
		"host_name":               l.Host,
		"query_id":                l.QueryID,
		"thread_id":               l.ThreadID,
		"priority":                l.Priority,
		"source":                  l.Source,
		"text":                    l.Text,
	}
}

// All materializes every decoded row as a Log.
func (l *Logs) All() []Log {
	n := l.Text.Rows()
	out := make([]Log, n)
	for i := 0; i < n; i++ {
		out[i] = Log{
			Time:      l.Time.Row(i),
			TimeMicro: l.TimeMicro.Row(i),
			Host:      l.Host.Row(i),
			QueryID:   l.QueryID.Row(i),
			ThreadID:  l.ThreadID.Row(i),
			Priority:  l.Priority.Row(i),
			Source:    l.Source.Row(i),
			Text:      l.Text.Row(i),
		}
	}
	return out
}

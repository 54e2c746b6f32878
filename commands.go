package ssdb

import (
	"context"
	"strconv"

	"github.com/driftlab/ssdb/wire"
)

// Item is the result of a point read.
type Item struct {
	Key   string
	Value []byte
	Found bool // indicates whether the key exists on the server
}

// Get retrieves the value for a key. A missing key is not an error:
// the returned Item has Found set to false.
func (s *Session) Get(ctx context.Context, key string) (Item, error) {
	resp, err := s.Do(ctx, wire.NewGetCommand(key))
	if err != nil {
		s.stats.recordError()
		return Item{}, err
	}

	if resp.IsNotFound() {
		s.stats.recordGet(false)
		return Item{Key: key}, nil
	}

	if !resp.IsOK() {
		s.stats.recordError()
		return Item{}, &CommandError{Verb: wire.VerbGet, Key: key, Response: resp, Message: "unexpected status"}
	}

	s.stats.recordGet(true)
	return Item{Key: key, Value: resp.Value(), Found: true}, nil
}

// Set stores a value for a key.
func (s *Session) Set(ctx context.Context, key string, value []byte) error {
	resp, err := s.Do(ctx, wire.NewSetCommand(key, value))
	if err != nil {
		s.stats.recordError()
		return err
	}

	if !resp.IsOK() {
		s.stats.recordError()
		return &CommandError{Verb: wire.VerbSet, Key: key, Response: resp, Message: "not stored"}
	}

	s.stats.recordSet()
	return nil
}

// Delete removes a key. Deleting a missing key succeeds.
func (s *Session) Delete(ctx context.Context, key string) error {
	resp, err := s.Do(ctx, wire.NewDelCommand(key))
	if err != nil {
		s.stats.recordError()
		return err
	}

	if !resp.IsOK() && !resp.IsNotFound() {
		s.stats.recordError()
		return &CommandError{Verb: wire.VerbDel, Key: key, Response: resp, Message: "not deleted"}
	}

	s.stats.recordDelete()
	return nil
}

// HGet retrieves the value for a key within a named hash map.
func (s *Session) HGet(ctx context.Context, name, key string) (Item, error) {
	resp, err := s.Do(ctx, wire.NewHGetCommand(name, key))
	if err != nil {
		s.stats.recordError()
		return Item{}, err
	}

	if resp.IsNotFound() {
		s.stats.recordHashGet(false)
		return Item{Key: key}, nil
	}

	if !resp.IsOK() {
		s.stats.recordError()
		return Item{}, &CommandError{Verb: wire.VerbHGet, Key: name + "/" + key, Response: resp, Message: "unexpected status"}
	}

	s.stats.recordHashGet(true)
	return Item{Key: key, Value: resp.Value(), Found: true}, nil
}

// HSet stores a value for a key within a named hash map.
func (s *Session) HSet(ctx context.Context, name, key string, value []byte) error {
	resp, err := s.Do(ctx, wire.NewHSetCommand(name, key, value))
	if err != nil {
		s.stats.recordError()
		return err
	}

	if !resp.IsOK() {
		s.stats.recordError()
		return &CommandError{Verb: wire.VerbHSet, Key: name + "/" + key, Response: resp, Message: "not stored"}
	}

	s.stats.recordHashSet()
	return nil
}

// HDelete removes a key from a named hash map. Deleting a missing key
// succeeds.
func (s *Session) HDelete(ctx context.Context, name, key string) error {
	resp, err := s.Do(ctx, wire.NewHDelCommand(name, key))
	if err != nil {
		s.stats.recordError()
		return err
	}

	if !resp.IsOK() && !resp.IsNotFound() {
		s.stats.recordError()
		return &CommandError{Verb: wire.VerbHDel, Key: name + "/" + key, Response: resp, Message: "not deleted"}
	}

	s.stats.recordHashDelete()
	return nil
}

// Incr atomically adds delta to the numeric value stored at key and
// returns the new value. The server creates a missing key at zero first.
func (s *Session) Incr(ctx context.Context, key string, delta int64) (int64, error) {
	resp, err := s.Do(ctx, wire.NewIncrCommand(key, delta))
	if err != nil {
		s.stats.recordError()
		return 0, err
	}

	if !resp.IsOK() {
		s.stats.recordError()
		return 0, &CommandError{Verb: wire.VerbIncr, Key: key, Response: resp, Message: "not incremented"}
	}

	if !resp.HasValue() {
		s.stats.recordError()
		return 0, &CommandError{Verb: wire.VerbIncr, Key: key, Response: resp, Message: "response missing value"}
	}

	value, err := strconv.ParseInt(string(resp.Value()), 10, 64)
	if err != nil {
		s.stats.recordError()
		return 0, &CommandError{Verb: wire.VerbIncr, Key: key, Response: resp, Message: "non-numeric value " + strconv.Quote(string(resp.Value()))}
	}

	s.stats.recordIncr()
	return value, nil
}

// Info returns server statistics as name/value pairs. The server reports
// its own name as an odd leading block; it is kept under the "server" key.
func (s *Session) Info(ctx context.Context) (map[string]string, error) {
	resp, err := s.Do(ctx, wire.NewInfoCommand())
	if err != nil {
		s.stats.recordError()
		return nil, err
	}

	if !resp.IsOK() {
		s.stats.recordError()
		return nil, &CommandError{Verb: wire.VerbInfo, Response: resp, Message: "unexpected status"}
	}

	payload := resp.Payload()
	info := make(map[string]string, len(payload)/2+1)

	i := 0
	if len(payload)%2 == 1 {
		info["server"] = string(payload[0])
		i = 1
	}
	for ; i+1 < len(payload); i += 2 {
		info[string(payload[i])] = string(payload[i+1])
	}

	return info, nil
}

// Ping checks that the server is reachable and answering, using the info
// command. It reports nothing about the data set.
func (s *Session) Ping(ctx context.Context) error {
	_, err := s.Info(ctx)
	return err
}

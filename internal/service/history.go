package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// NoRecordedPrice is returned by LastPrice when the store holds no record.
// Large enough that a first run never looks like a price rise.
const NoRecordedPrice = 999999

// HistoryStore keeps the last observed best price plus an append-only log of
// observations. Single writer by contract: one process, one run at a time.
type HistoryStore interface {
	LastPrice() float64
	Record(price float64, tripType string, at time.Time) error
}

// FileHistoryStore is the file-backed store of the reference deployment:
// a scalar file that is overwritten and a log file that only grows.
type FileHistoryStore struct {
	lastPath string
	logPath  string
}

func NewFileHistoryStore(dir string) *FileHistoryStore {
	return &FileHistoryStore{
		lastPath: filepath.Join(dir, "last_price.txt"),
		logPath:  filepath.Join(dir, "price_history.log"),
	}
}

func (s *FileHistoryStore) LastPrice() float64 {
	b, err := os.ReadFile(s.lastPath)
	if err != nil {
		return NoRecordedPrice
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(b)), 64)
	if err != nil {
		return NoRecordedPrice
	}
	return v
}

func (s *FileHistoryStore) Record(price float64, tripType string, at time.Time) error {
	if err := os.WriteFile(s.lastPath, []byte(strconv.FormatFloat(price, 'f', -1, 64)), 0o644); err != nil {
		return err
	}

	f, err := os.OpenFile(s.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%s - €%.0f (%s)\n", at.Format("2006-01-02 15:04:05"), price, tripType)
	return err
}

// MemoryHistoryStore is an in-process double for tests and dry runs.
type MemoryHistoryStore struct {
	last    float64
	hasLast bool
	Log     []string
}

func (s *MemoryHistoryStore) LastPrice() float64 {
	if !s.hasLast {
		return NoRecordedPrice
	}
	return s.last
}

func (s *MemoryHistoryStore) Record(price float64, tripType string, at time.Time) error {
	s.last = price
	s.hasLast = true
	s.Log = append(s.Log, fmt.Sprintf("%s - €%.0f (%s)", at.Format("2006-01-02 15:04:05"), price, tripType))
	return nil
}

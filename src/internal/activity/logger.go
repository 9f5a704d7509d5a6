package activity

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"hotspot-portal-svc/src/internal/config"
	"hotspot-portal-svc/src/internal/models"

	"github.com/sirupsen/logrus"
)

// Service records portal events to two append-only JSONL files: the event
// log (connection lifecycle with structured details) and the user-activity
// log (per-file upload trail). Write failures are logged and swallowed;
// recording activity must never fail a request.
type Service interface {
	Record(ip, action string, details any)
	RecordUserActivity(ip, action, filename string)
	Close() error
}

type service struct {
	mu          sync.Mutex
	eventLog    *os.File
	activityLog *os.File
}

func NewService(cfg *config.ActivityConfig) (Service, error) {
	eventLog, err := openAppend(cfg.EventLogPath)
	if err != nil {
		return nil, err
	}

	activityLog, err := openAppend(cfg.ActivityLogPath)
	if err != nil {
		eventLog.Close()
		return nil, err
	}

	return &service{
		eventLog:    eventLog,
		activityLog: activityLog,
	}, nil
}

func openAppend(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

func (s *service) Record(ip, action string, details any) {
	entry := models.EventEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		IP:        ip,
		Action:    action,
		Details:   details,
	}
	s.append(s.eventLog, entry)
}

func (s *service) RecordUserActivity(ip, action, filename string) {
	entry := models.UserActivityEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		IP:        ip,
		Action:    action,
		Filename:  filename,
	}
	s.append(s.activityLog, entry)
}

// append marshals the entry and writes it as one line with a single Write
// call, so concurrent writers interleave at line granularity only.
func (s *service) append(f *os.File, entry any) {
	data, err := json.Marshal(entry)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal log entry")
		return
	}
	data = append(data, '\n')

	s.mu.Lock()
	_, err = f.Write(data)
	s.mu.Unlock()

	if err != nil {
		logrus.WithError(err).WithField("file", f.Name()).Error("Failed to append log entry")
	}
}

func (s *service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	errEvent := s.eventLog.Close()
	errActivity := s.activityLog.Close()
	if errEvent != nil {
		return errEvent
	}
	return errActivity
}

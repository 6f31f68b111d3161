package analytics

import (
	"fmt"
	"strings"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Named per test so pooled connections share one database without
	// leaking state across tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Message{}, &Evaluation{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func fixClock(t *testing.T, at time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = orig })
}

func newMessage(createdAt time.Time, question, response string) Message {
	return Message{
		ID:        uuid.NewString(),
		CreatedAt: createdAt,
		Question:  question,
		Response:  response,
	}
}

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }
func boolPtr(v bool) *bool   { return &v }

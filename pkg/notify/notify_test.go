package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taxiservice/pkg/models"
)

func TestAssignmentMessage(t *testing.T) {
	driver := &models.Driver{Username: "test_username"}
	car := &models.Car{ID: 3, Model: "Camry", Manufacturer: &models.Manufacturer{Name: "Toyota"}}

	require.Equal(t, "🚖 test_username took car #3 (Toyota Camry)", assignmentMessage(driver, car, true))
	require.Equal(t, "🅿️ test_username left car #3 (Toyota Camry)", assignmentMessage(driver, car, false))
	require.Equal(t, "🚖 test_username took car #3 (Camry)", assignmentMessage(driver, &models.Car{ID: 3, Model: "Camry"}, true))
}

func TestNewTelegram_RequiresCredentials(t *testing.T) {
	_, err := NewTelegram("", 1)
	require.Error(t, err)

	_, err = NewTelegram("token", 0)
	require.Error(t, err)
}

func TestNewTelegram_Offline(t *testing.T) {
	n, err := NewTelegram("123:abc", 42)
	require.NoError(t, err)
	require.NotNil(t, n)
}

func TestNop(t *testing.T) {
	require.NoError(t, NewNop().AssignmentChanged(&models.Driver{}, &models.Car{}, true))
}

func TestTelegram_SendTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	n, err := NewTelegram("123:abc", 42, WithAPIURL(srv.URL), WithSendTimeout(100*time.Millisecond))
	require.NoError(t, err)

	start := time.Now()
	err = n.AssignmentChanged(&models.Driver{Username: "test_username"}, &models.Car{ID: 1, Model: "Camry"}, true)
	require.Error(t, err)
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestTelegram_Send(t *testing.T) {
	type sent struct{ path, text string }
	got := make(chan sent, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		text, _ := body["text"].(string)
		got <- sent{path: r.URL.Path, text: text}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"},"text":"ok"}}`))
	}))
	defer srv.Close()

	n, err := NewTelegram("123:abc", 42, WithAPIURL(srv.URL))
	require.NoError(t, err)

	err = n.AssignmentChanged(&models.Driver{Username: "test_username"}, &models.Car{ID: 1, Model: "Camry"}, false)
	require.NoError(t, err)

	msg := <-got
	require.Equal(t, "/bot123:abc/sendMessage", msg.path)
	require.Equal(t, "🅿️ test_username left car #1 (Camry)", msg.text)
}

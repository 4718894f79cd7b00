package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/Varun5711/autocare/internal/client"
	"github.com/Varun5711/autocare/internal/models"
)

var (
	apiBaseURL       = getEnv("API_BASE_URL", "http://localhost:5000/api")
	testUserEmail    = fmt.Sprintf("test-%d@example.com", time.Now().UnixNano())
	testUserPassword = "testPassword123"
	authToken        string
	bookedDate       = time.Now().AddDate(0, 0, 7).Format("2006-01-02")
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func TestMain(m *testing.M) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		fmt.Println("Skipping integration tests. Set INTEGRATION_TEST=true to run.")
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func newClient() *client.Client {
	return client.New(client.Config{BaseURL: apiBaseURL, Timeout: 15 * time.Second}, nil)
}

func TestUserSignup(t *testing.T) {
	err := newClient().Signup(context.Background(), testUserEmail, testUserPassword)
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
}

func TestUserLogin(t *testing.T) {
	resp, err := newClient().Login(context.Background(), testUserEmail, testUserPassword)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if resp.Token == "" {
		t.Fatal("expected a token in login response")
	}
	if resp.User.Email != testUserEmail {
		t.Errorf("expected user %s, got %s", testUserEmail, resp.User.Email)
	}
	authToken = resp.Token
}

func TestUserLogin_WrongPassword(t *testing.T) {
	_, err := newClient().Login(context.Background(), testUserEmail, "wrong-password")
	if err == nil {
		t.Fatal("expected login with wrong password to fail")
	}
}

func TestCreateAppointment(t *testing.T) {
	if authToken == "" {
		t.Skip("no auth token available")
	}

	draft := models.AppointmentDraft{
		CarMake:     "Honda",
		CarModel:    "Civic",
		CarYear:     "2019",
		ServiceType: "oil-change",
		Date:        bookedDate,
		Time:        "10:00",
		Description: "integration test booking",
	}

	if _, err := newClient().CreateAppointment(context.Background(), authToken, draft); err != nil {
		t.Fatalf("create appointment failed: %v", err)
	}
}

func TestListAppointments(t *testing.T) {
	if authToken == "" {
		t.Skip("no auth token available")
	}

	list, err := newClient().ListAppointments(context.Background(), authToken)
	if err != nil {
		t.Fatalf("list appointments failed: %v", err)
	}

	found := false
	for _, a := range list {
		if a.Date == bookedDate && a.Time == "10:00" && a.ServiceType == "oil-change" {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected booked appointment on %s in %d results", bookedDate, len(list))
	}
}

func TestListAppointments_Unauthenticated(t *testing.T) {
	_, err := newClient().ListAppointments(context.Background(), "not-a-token")
	if err == nil {
		t.Fatal("expected listing with an invalid token to fail")
	}
}

func TestLogout(t *testing.T) {
	if authToken == "" {
		t.Skip("no auth token available")
	}

	if err := newClient().Logout(context.Background(), authToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
}

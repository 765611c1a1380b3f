package twilio

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestConfigured(t *testing.T) {
	cases := []struct {
		name string
		sid  string
		tok  string
		from string
		want bool
	}{
		{"all set", "AC123", "token", "+15550001111", true},
		{"missing sid", "", "token", "+15550001111", false},
		{"missing token", "AC123", "", "+15550001111", false},
		{"missing number", "AC123", "token", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewClient(tc.sid, tc.tok, tc.from)
			if got := c.Configured(); got != tc.want {
				t.Errorf("Configured() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSendWhatsApp(t *testing.T) {
	var gotPath, gotFrom, gotTo, gotBody, gotUser, gotPass string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		r.ParseForm()
		gotFrom = r.PostFormValue("From")
		gotTo = r.PostFormValue("To")
		gotBody = r.PostFormValue("Body")

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"SM1234567890"}`))
	}))
	defer ts.Close()

	c := NewClient("AC123", "secret", "+15550001111", WithBaseURL(ts.URL))

	sid, err := c.SendWhatsApp("+15551234567", "Reminder body")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if sid != "SM1234567890" {
		t.Errorf("sid = %q, want SM1234567890", sid)
	}
	if gotPath != "/2010-04-01/Accounts/AC123/Messages.json" {
		t.Errorf("path = %q", gotPath)
	}
	if gotUser != "AC123" || gotPass != "secret" {
		t.Errorf("basic auth = %q/%q", gotUser, gotPass)
	}
	if gotFrom != "whatsapp:+15550001111" {
		t.Errorf("From = %q", gotFrom)
	}
	if gotTo != "whatsapp:+15551234567" {
		t.Errorf("To = %q", gotTo)
	}
	if gotBody != "Reminder body" {
		t.Errorf("Body = %q", gotBody)
	}
}

func TestSendWhatsAppAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid number"}`, http.StatusBadRequest)
	}))
	defer ts.Close()

	c := NewClient("AC123", "secret", "+15550001111", WithBaseURL(ts.URL))

	if _, err := c.SendWhatsApp("+15551234567", "hi"); err == nil {
		t.Fatal("expected error for 400 response")
	}
}

func TestSendWhatsAppUnconfigured(t *testing.T) {
	c := NewClient("", "", "")

	if _, err := c.SendWhatsApp("+15551234567", "hi"); err == nil {
		t.Fatal("expected error when credentials are missing")
	}
}

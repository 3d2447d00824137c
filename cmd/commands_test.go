package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAsk(t *testing.T) {
	srv := fakeBackend(t)

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr string
	}{
		{"chat", []string{"ask", "hello", "there"}, "echo: hello there", ""},
		{"code mode", []string{"ask", "--mode", "code", "sort"}, "code: sort", ""},
		{"image mode", []string{"ask", "--mode", "image", "a fox"}, srv.URL + "/media/fox.png", ""},
		{"backend failure", []string{"ask", "fail"}, "", "Sorry"},
		{"blank message", []string{"ask", "   "}, "", "message is empty"},
		{"unknown mode", []string{"ask", "--mode", "video", "x"}, "", "unknown mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, srv, tt.args...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want it to contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output = %q, want it to contain %q", out, tt.want)
			}
		})
	}
}

func TestSpeak(t *testing.T) {
	srv := fakeBackend(t)

	out, err := execute(t, srv, "speak", "--lang", "fr", "bonjour")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, srv.URL+"/media/fr.mp3") {
		t.Errorf("output = %q", out)
	}
}

func TestSpeak_DefaultLanguageAndDownload(t *testing.T) {
	srv := fakeBackend(t)
	dest := filepath.Join(t.TempDir(), "out.mp3")

	out, err := execute(t, srv, "speak", "--out", dest, "hello")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "/media/en.mp3") {
		t.Errorf("default language should be en, output = %q", out)
	}
	data, err := os.ReadFile(dest)
	if err != nil || string(data) != "ID3-audio" {
		t.Errorf("downloaded %q, %v", data, err)
	}
}

func TestSpeak_FailedDownloadRemovesFile(t *testing.T) {
	srv := fakeBackend(t)
	dest := filepath.Join(t.TempDir(), "out.mp3")

	_, err := execute(t, srv, "speak", "--lang", "de", "--out", dest, "hallo")
	if err == nil || !strings.Contains(err.Error(), "error downloading audio") {
		t.Fatalf("error = %v", err)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Errorf("partial download left behind: %v", err)
	}
}

func TestSpeak_Rejects(t *testing.T) {
	srv := fakeBackend(t)

	if _, err := execute(t, srv, "speak", "--lang", "xx", "hello"); err == nil || !strings.Contains(err.Error(), "unsupported language") {
		t.Errorf("error = %v", err)
	}
	if _, err := execute(t, srv, "speak"); err == nil || !strings.Contains(err.Error(), "enter some text") {
		t.Errorf("error = %v", err)
	}
}

func TestContact(t *testing.T) {
	out, err := execute(t, nil, "contact",
		"--name", "Ada",
		"--email", "ada@example.com",
		"--subject", "Hello",
		"--message", "I would like to know more.",
	)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Message sent successfully!") {
		t.Errorf("output = %q", out)
	}
}

func TestContact_ValidationErrors(t *testing.T) {
	out, err := execute(t, nil, "contact", "--email", "bad", "--subject", "Hi", "--message", "short")
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"Name is required", "Email is invalid", "Message must be at least 10 characters"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if strings.Contains(out, "Subject") {
		t.Errorf("valid subject should not be reported: %q", out)
	}
}

func TestAccountFlow(t *testing.T) {
	srv := fakeBackend(t)
	t.Setenv("DARKCHAT_HOME", t.TempDir())

	out, err := execute(t, srv, "whoami")
	if err != nil || !strings.Contains(out, "Not signed in") {
		t.Fatalf("whoami before signin: %q, %v", out, err)
	}

	_, err = execute(t, srv, "signin", "--email", "alice@example.com", "--password", "wrong")
	if err == nil || err.Error() != "Invalid credentials" {
		t.Fatalf("signin with a bad password: %v", err)
	}

	out, err = execute(t, srv, "signin", "--email", "alice@example.com", "--password", "secret")
	if err != nil || !strings.Contains(out, "Signed in as alice") {
		t.Fatalf("signin: %q, %v", out, err)
	}

	out, err = execute(t, srv, "whoami")
	if err != nil || !strings.Contains(out, "alice") || !strings.Contains(out, "alice@example.com") {
		t.Fatalf("whoami: %q, %v", out, err)
	}

	out, err = execute(t, srv, "signout")
	if err != nil || !strings.Contains(out, "Signed out alice") {
		t.Fatalf("signout: %q, %v", out, err)
	}

	out, _ = execute(t, srv, "whoami")
	if !strings.Contains(out, "Not signed in") {
		t.Errorf("whoami after signout: %q", out)
	}
}

func TestSignin_ValidationBeforeRequest(t *testing.T) {
	_, err := execute(t, fakeBackend(t), "signin", "--email", "not-an-email", "--password", "secret")
	if err == nil || err.Error() != "Email is invalid" {
		t.Errorf("error = %v", err)
	}
}

func TestSignupAndVerify(t *testing.T) {
	srv := fakeBackend(t)
	t.Setenv("DARKCHAT_HOME", t.TempDir())

	_, err := execute(t, srv, "signup", "--username", "bob", "--email", "bob@example.com", "--password", "123")
	if err == nil || err.Error() != "Password must be at least 6 characters" {
		t.Fatalf("short password: %v", err)
	}

	out, err := execute(t, srv, "signup", "--username", "bob", "--email", "bob@example.com", "--password", "hunter22")
	if err != nil || !strings.Contains(out, "darkchat verify") {
		t.Fatalf("signup: %q, %v", out, err)
	}

	_, err = execute(t, srv, "verify", "--username", "bob", "--email", "bob@example.com", "--otp", "000000")
	if err == nil || err.Error() != "Invalid OTP" {
		t.Fatalf("bad otp: %v", err)
	}

	out, err = execute(t, srv, "verify", "--username", "bob", "--email", "bob@example.com", "--otp", "123456")
	if err != nil || !strings.Contains(out, "Welcome, bob!") {
		t.Fatalf("verify: %q, %v", out, err)
	}

	out, _ = execute(t, srv, "whoami")
	if !strings.Contains(out, "bob") {
		t.Errorf("whoami after verify: %q", out)
	}
}

func TestVerify_RequiresUsername(t *testing.T) {
	srv := fakeBackend(t)
	t.Setenv("DARKCHAT_HOME", t.TempDir())

	_, err := execute(t, srv, "verify", "--email", "bob@example.com", "--otp", "123456")
	if err == nil || !strings.Contains(strings.ToLower(err.Error()), "username") {
		t.Fatalf("error = %v", err)
	}

	out, _ := execute(t, srv, "whoami")
	if !strings.Contains(out, "Not signed in") {
		t.Errorf("whoami after a verify without username: %q", out)
	}
}

func TestConfigSetAndShow(t *testing.T) {
	home := t.TempDir()
	t.Setenv("DARKCHAT_HOME", home)
	t.Setenv("DARKCHAT_OAUTH_CLIENT_ID", "")
	srv := fakeBackend(t)

	out, err := execute(t, srv, "config", "set", "theme", "nord")
	if err != nil || !strings.Contains(out, "Set theme to nord") {
		t.Fatalf("set theme: %q, %v", out, err)
	}
	out, err = execute(t, srv, "config", "set", "notifications", "on")
	if err != nil || !strings.Contains(out, "Set notifications to on") {
		t.Fatalf("set notifications: %q, %v", out, err)
	}

	data, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	saved := string(data)
	if !strings.Contains(saved, "theme: nord") || !strings.Contains(saved, "notifications_enabled: true") {
		t.Errorf("config file = %q", saved)
	}
	if strings.Contains(saved, srv.URL) {
		t.Errorf("environment base URL written to the config file: %q", saved)
	}

	out, err = execute(t, srv, "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"config.yaml", srv.URL, "nord", " on\n", "not configured"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output %q missing %q", out, want)
		}
	}
}

func TestConfigSet_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown theme", []string{"config", "set", "theme", "solarized"}, "unknown theme"},
		{"bad toggle", []string{"config", "set", "notifications", "maybe"}, "use on or off"},
		{"unknown setting", []string{"config", "set", "font", "mono"}, "unknown setting"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			t.Setenv("DARKCHAT_HOME", home)
			_, err := execute(t, nil, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want it to contain %q", err, tt.wantErr)
			}
			if _, err := os.Stat(filepath.Join(home, "config.yaml")); !os.IsNotExist(err) {
				t.Errorf("rejected setting should not write the config file: %v", err)
			}
		})
	}
}

func TestWhoami_OAuthStatus(t *testing.T) {
	srv := fakeBackend(t)
	t.Setenv("DARKCHAT_HOME", t.TempDir())

	t.Setenv("DARKCHAT_OAUTH_CLIENT_ID", "")
	out, err := execute(t, srv, "whoami")
	if err != nil || !strings.Contains(out, "not configured") {
		t.Fatalf("whoami without client: %q, %v", out, err)
	}

	t.Setenv("DARKCHAT_OAUTH_CLIENT_ID", "client-123")
	out, err = execute(t, srv, "whoami")
	if err != nil || !strings.Contains(out, "client configured") {
		t.Fatalf("whoami with client: %q, %v", out, err)
	}
}

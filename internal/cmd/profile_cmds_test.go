package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/gitid-dev/gitid/internal/profile"
	"github.com/gitid-dev/gitid/internal/sshconfig"
)

func TestInit(t *testing.T) {
	env := setupEnv(t, false)

	out, err := execute(t, "init")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, "Created config") {
		t.Errorf("output = %q", out)
	}
	if _, err := os.Stat(env.configPath); err != nil {
		t.Fatalf("config not created: %v", err)
	}

	out, err = execute(t, "init")
	if err != nil {
		t.Fatalf("second init: %v", err)
	}
	if !strings.Contains(out, "already exists") {
		t.Errorf("second init output = %q", out)
	}
}

func TestAdd_Flags(t *testing.T) {
	env := setupEnv(t, false)

	out, err := execute(t, "add", "work",
		"--user-name", "Jane Doe",
		"--email", "jane@corp.com",
		"--platform", "GitHub",
		"--ssh-key", "~/.ssh/id_ed25519_work",
		"--host", "github.corp.com",
	)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, "Added profile") {
		t.Errorf("output = %q", out)
	}

	p, err := env.load(t).Get("work")
	if err != nil {
		t.Fatalf("Get(work): %v", err)
	}
	want := profile.Profile{
		Name:     "Jane Doe",
		Email:    "jane@corp.com",
		Platform: profile.PlatformGitHub,
		SSHKey:   "~/.ssh/id_ed25519_work",
		Host:     "github.corp.com",
	}
	if p != want {
		t.Errorf("profile = %+v, want %+v", p, want)
	}
}

func TestAdd_MissingFlagNonInteractive(t *testing.T) {
	setupEnv(t, false)

	_, err := execute(t, "add", "work", "--email", "jane@corp.com")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "--user-name") {
		t.Errorf("error should name the missing flag: %v", err)
	}
}

func TestAdd_InvalidPlatform(t *testing.T) {
	setupEnv(t, false)

	_, err := execute(t, "add", "work",
		"--user-name", "Jane", "--email", "j@x.com",
		"--platform", "bitbucket", "--ssh-key", "~/.ssh/k")
	if !errors.Is(err, profile.ErrInvalidPlatform) {
		t.Errorf("expected ErrInvalidPlatform, got: %v", err)
	}
}

func TestAdd_Duplicate(t *testing.T) {
	env := setupEnv(t, false)
	env.seed(t, "", map[string]profile.Profile{"work": workProfile})

	_, err := execute(t, "add", "work",
		"--user-name", "Other", "--email", "o@x.com",
		"--platform", "github", "--ssh-key", "~/.ssh/k")
	if !errors.Is(err, profile.ErrProfileExists) {
		t.Errorf("expected ErrProfileExists, got: %v", err)
	}
	if got := env.load(t).Profiles["work"]; got != workProfile {
		t.Errorf("existing profile changed: %+v", got)
	}
}

func TestAdd_Interactive(t *testing.T) {
	env := setupEnv(t, true)
	env.prompter.
		OnText("Jane Doe", "jane@corp.com", "", "").
		OnSelect(2, 1).
		OnConfirm(false)

	if _, err := execute(t, "add", "work"); err != nil {
		t.Fatalf("add: %v", err)
	}

	p, err := env.load(t).Get("work")
	if err != nil {
		t.Fatalf("Get(work): %v", err)
	}
	if p.Name != "Jane Doe" || p.Email != "jane@corp.com" {
		t.Errorf("identity = %q <%q>", p.Name, p.Email)
	}
	if p.Platform != profile.PlatformBoth {
		t.Errorf("Platform = %q, want both", p.Platform)
	}
	if p.SSHKey != "~/.ssh/id_ed25519_work" {
		t.Errorf("SSHKey = %q, want the manual-entry default", p.SSHKey)
	}
	if p.GPGKey != "" || p.Host != "" {
		t.Errorf("optional fields should be empty: %+v", p)
	}
}

func TestAdd_GenerateKey(t *testing.T) {
	env := setupEnv(t, true)
	env.prompter.
		OnText("Jane Doe", "jane@corp.com").
		OnSelect(0, 0)

	_, err := execute(t, "add", "work")
	// The mocked ssh-keygen writes nothing, so reading the public key fails.
	if err == nil {
		t.Fatal("expected an error reading the generated public key")
	}
	if !env.hasCall("ssh-keygen -t ed25519 -C jane@corp.com -f " + env.sshDir + "/id_ed25519_work -N ") {
		t.Errorf("ssh-keygen not run as expected; calls = %v", env.runner.CommandLines())
	}
	if env.load(t).Has("work") {
		t.Error("profile should not be saved when key generation fails")
	}
}

func TestRemove_Force(t *testing.T) {
	env := setupEnv(t, false)
	env.seed(t, "work", map[string]profile.Profile{
		"work":     workProfile,
		"personal": personalProfile,
	})

	if _, err := execute(t, "remove", "work", "--force"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	s := env.load(t)
	if s.Has("work") {
		t.Error("work should be removed")
	}
	if s.DefaultProfile != "" {
		t.Errorf("DefaultProfile = %q, want cleared", s.DefaultProfile)
	}
	if !s.Has("personal") {
		t.Error("personal should remain")
	}
}

func TestRemove_NotFound(t *testing.T) {
	env := setupEnv(t, false)
	env.seed(t, "", map[string]profile.Profile{"work": workProfile})

	_, err := execute(t, "remove", "nope", "--force")
	if !errors.Is(err, profile.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got: %v", err)
	}
}

func TestRemove_RequiresConfirmation(t *testing.T) {
	env := setupEnv(t, false)
	env.seed(t, "", map[string]profile.Profile{"work": workProfile})

	if _, err := execute(t, "remove", "work"); err == nil {
		t.Fatal("expected error without --force when not interactive")
	}
	if !env.load(t).Has("work") {
		t.Error("profile removed without confirmation")
	}
}

func TestRemove_ConfirmDeclined(t *testing.T) {
	env := setupEnv(t, true)
	env.seed(t, "", map[string]profile.Profile{"work": workProfile})
	env.prompter.OnConfirm(false)

	out, err := execute(t, "remove", "work")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !strings.Contains(out, "Cancelled") {
		t.Errorf("output = %q", out)
	}
	if !env.load(t).Has("work") {
		t.Error("profile removed after declining")
	}
}

func TestRemove_CleanSSH(t *testing.T) {
	env := setupEnv(t, false)
	env.seed(t, "", map[string]profile.Profile{
		"work":     workProfile,
		"personal": personalProfile,
	})
	if _, err := execute(t, "ssh-sync"); err != nil {
		t.Fatalf("ssh-sync: %v", err)
	}

	if _, err := execute(t, "remove", "work", "--force", "--clean-ssh"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	data, err := os.ReadFile(env.sshConfig)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if strings.Contains(content, "Host github-work") {
		t.Error("work alias should be gone from SSH config")
	}
	if !strings.Contains(content, "Host gitlab-personal") {
		t.Error("personal alias should remain")
	}
	if strings.Count(content, sshconfig.ManagedStart) != 1 {
		t.Errorf("expected one managed block:\n%s", content)
	}
}

func TestList_Empty(t *testing.T) {
	setupEnv(t, false)

	out, err := execute(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "No profiles configured") {
		t.Errorf("output = %q", out)
	}
}

func TestList_Text(t *testing.T) {
	env := setupEnv(t, false)
	env.seed(t, "personal", map[string]profile.Profile{
		"work":     workProfile,
		"personal": personalProfile,
	})
	env.localIdentity("Jane Doe", "jane@corp.com")

	out, err := execute(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if strings.Index(out, "personal") > strings.Index(out, "work") {
		t.Errorf("profiles should be listed by name:\n%s", out)
	}
	if !strings.Contains(out, "(default)") {
		t.Errorf("default marker missing:\n%s", out)
	}
	if !strings.Contains(out, "* work") {
		t.Errorf("current marker missing:\n%s", out)
	}
	if !strings.Contains(out, "ABC123") {
		t.Errorf("GPG key missing:\n%s", out)
	}
}

func TestList_JSON(t *testing.T) {
	env := setupEnv(t, false)
	env.seed(t, "work", map[string]profile.Profile{
		"work":     workProfile,
		"personal": personalProfile,
	})
	env.localIdentity("Jane", "jane@home.net")

	out, err := execute(t, "list", "--format", "json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	var got []struct {
		ID       string `json:"id"`
		Current  bool   `json:"current"`
		Default  bool   `json:"default"`
		Email    string `json:"email"`
		Platform string `json:"platform"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(got) != 2 || got[0].ID != "personal" || got[1].ID != "work" {
		t.Fatalf("entries = %+v", got)
	}
	if !got[0].Current || got[1].Current {
		t.Errorf("current flags = %v/%v", got[0].Current, got[1].Current)
	}
	if got[0].Default || !got[1].Default {
		t.Errorf("default flags = %v/%v", got[0].Default, got[1].Default)
	}
	if got[1].Platform != "github" || got[1].Email != "jane@corp.com" {
		t.Errorf("work entry = %+v", got[1])
	}
}

func TestList_YAML(t *testing.T) {
	env := setupEnv(t, false)
	env.seed(t, "", map[string]profile.Profile{"work": workProfile})
	env.notARepo()

	out, err := execute(t, "list", "--format", "yaml")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	var got []map[string]any
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, out)
	}
	if len(got) != 1 {
		t.Fatalf("entries = %v", got)
	}
	if got[0]["id"] != "work" || got[0]["ssh_key"] != "~/.ssh/id_ed25519_work" || got[0]["platform"] != "github" {
		t.Errorf("entry = %v", got[0])
	}
}

func TestList_InvalidFormat(t *testing.T) {
	setupEnv(t, false)

	if _, err := execute(t, "list", "--format", "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestDefault(t *testing.T) {
	env := setupEnv(t, false)
	env.seed(t, "", map[string]profile.Profile{"work": workProfile})

	out, err := execute(t, "default")
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	if !strings.Contains(out, "No default profile set") {
		t.Errorf("output = %q", out)
	}

	if _, err := execute(t, "default", "work"); err != nil {
		t.Fatalf("default work: %v", err)
	}
	if got := env.load(t).DefaultProfile; got != "work" {
		t.Errorf("DefaultProfile = %q, want work", got)
	}

	out, err = execute(t, "default")
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	if strings.TrimSpace(out) != "work" {
		t.Errorf("output = %q, want work", out)
	}

	if _, err := execute(t, "default", "--clear"); err != nil {
		t.Fatalf("default --clear: %v", err)
	}
	if got := env.load(t).DefaultProfile; got != "" {
		t.Errorf("DefaultProfile = %q, want empty", got)
	}
}

func TestDefault_Unknown(t *testing.T) {
	env := setupEnv(t, false)
	env.seed(t, "", map[string]profile.Profile{"work": workProfile})

	_, err := execute(t, "default", "nope")
	if !errors.Is(err, profile.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got: %v", err)
	}
}

func TestAuth(t *testing.T) {
	env := setupEnv(t, false)
	p := workProfile
	p.Platform = profile.PlatformBoth
	env.seed(t, "", map[string]profile.Profile{"work": p})

	out, err := execute(t, "auth", "work")
	if err != nil {
		t.Fatalf("auth: %v", err)
	}
	if !env.hasCall("gh auth login --git-protocol ssh") || !env.hasCall("glab auth login") {
		t.Errorf("calls = %v", env.runner.CommandLines())
	}
	if !strings.Contains(out, "Authenticating GitLab...") {
		t.Errorf("output = %q", out)
	}
}

package profile

import (
	"errors"
	"testing"
)

func workProfile() Profile {
	return Profile{
		Name:     "J D",
		Email:    "j@c.com",
		Platform: PlatformGitHub,
		SSHKey:   "~/.ssh/id_work",
	}
}

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		in      string
		want    Platform
		wantErr bool
	}{
		{in: "github", want: PlatformGitHub},
		{in: "gitlab", want: PlatformGitLab},
		{in: "both", want: PlatformBoth},
		{in: "GITHUB", want: PlatformGitHub},
		{in: " GitLab ", want: PlatformGitLab},
		{in: "bitbucket", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePlatform(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPlatform) {
					t.Errorf("expected ErrInvalidPlatform, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePlatform(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParsePlatform(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestProfile_DefaultHost(t *testing.T) {
	tests := []struct {
		platform Platform
		host     string
		want     string
	}{
		{platform: PlatformGitHub, want: "github.com"},
		{platform: PlatformGitLab, want: "gitlab.com"},
		{platform: PlatformBoth, want: "github.com"},
		{platform: PlatformGitHub, host: "github.corp.com", want: "github.corp.com"},
		{platform: PlatformGitLab, host: "gitlab.myorg.com", want: "gitlab.myorg.com"},
		{platform: PlatformBoth, host: "git.example.org", want: "git.example.org"},
	}

	for _, tt := range tests {
		t.Run(string(tt.platform)+"_"+tt.host, func(t *testing.T) {
			p := Profile{Platform: tt.platform, Host: tt.host}
			if got := p.DefaultHost(); got != tt.want {
				t.Errorf("DefaultHost() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProfile_SSHHostAlias(t *testing.T) {
	tests := []struct {
		platform Platform
		want     string
	}{
		{platform: PlatformGitHub, want: "github-work"},
		{platform: PlatformGitLab, want: "gitlab-work"},
		{platform: PlatformBoth, want: "git-work"},
	}

	for _, tt := range tests {
		t.Run(string(tt.platform), func(t *testing.T) {
			p := Profile{Platform: tt.platform}
			if got := p.SSHHostAlias("work"); got != tt.want {
				t.Errorf("SSHHostAlias = %q, want %q", got, tt.want)
			}
		})
	}

	both := Profile{Platform: PlatformBoth}
	aliases := both.PlatformAliases("oss")
	if len(aliases) != 2 || aliases[0] != "github-oss" || aliases[1] != "gitlab-oss" {
		t.Errorf("PlatformAliases = %v", aliases)
	}
	if got := workProfile().PlatformAliases("work"); got != nil {
		t.Errorf("github profile should have no platform aliases, got %v", got)
	}
}

func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Profile)
		want   error
	}{
		{name: "valid", mutate: func(*Profile) {}},
		{name: "empty name", mutate: func(p *Profile) { p.Name = "  " }, want: ErrEmptyName},
		{name: "empty email", mutate: func(p *Profile) { p.Email = "" }, want: ErrEmptyEmail},
		{name: "empty key", mutate: func(p *Profile) { p.SSHKey = "\t" }, want: ErrEmptySSHKey},
		{name: "bad platform", mutate: func(p *Profile) { p.Platform = "svn" }, want: ErrInvalidPlatform},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := workProfile()
			tt.mutate(&p)
			err := p.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

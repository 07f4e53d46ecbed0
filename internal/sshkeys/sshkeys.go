// Package sshkeys discovers and generates the SSH key pairs profiles use.
package sshkeys

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/crypto/ssh"

	"github.com/gitid-dev/gitid/internal/fsutil"
	"github.com/gitid-dev/gitid/internal/runner"
)

// EnvVarSSHDir overrides the directory keys are discovered in and generated
// into.
const EnvVarSSHDir = "GITID_SSH_DIR"

// Key types reported for discovered keys.
const (
	TypeEd25519   = "ed25519"
	TypeEd25519SK = "ed25519-sk"
	TypeECDSA     = "ecdsa"
	TypeECDSASK   = "ecdsa-sk"
	TypeRSA       = "rsa"
	TypeDSA       = "dsa"
	TypeOpenSSH   = "openssh"
	TypeUnknown   = "unknown"
)

var (
	// ErrKeyExists indicates Generate would overwrite an existing key.
	ErrKeyExists = errors.New("SSH key already exists")

	// ErrKeygenNotInstalled indicates ssh-keygen is not on PATH.
	ErrKeygenNotInstalled = errors.New("ssh-keygen not found. Is OpenSSH installed?")
)

// Files in the SSH directory that are never key pairs.
var skipNames = map[string]bool{
	"config":          true,
	"known_hosts":     true,
	"known_hosts.old": true,
	"authorized_keys": true,
}

// Key is a private key with a matching .pub file.
type Key struct {
	Name        string
	PrivatePath string
	PublicPath  string
	Type        string

	// Fingerprint is the SHA256 fingerprint, empty if the public key
	// could not be parsed.
	Fingerprint string
}

// DisplayPath returns the private key path with the home directory as "~".
func (k Key) DisplayPath() string {
	return fsutil.ContractHome(k.PrivatePath)
}

// Dir returns $GITID_SSH_DIR if set, otherwise ~/.ssh.
func Dir() (string, error) {
	if d := os.Getenv(EnvVarSSHDir); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".ssh"), nil
}

// Discover lists key pairs in dir sorted by name. A missing dir yields no
// keys.
func Discover(dir string) ([]Key, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading SSH directory %s: %w", dir, err)
	}

	var keys []Key
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasSuffix(name, ".pub") || strings.HasPrefix(name, ".") || skipNames[name] {
			continue
		}

		priv := filepath.Join(dir, name)
		if info, err := os.Stat(priv); err != nil || !info.Mode().IsRegular() {
			continue
		}
		pub := priv + ".pub"
		if _, err := os.Stat(pub); err != nil {
			continue
		}

		k := Key{Name: name, PrivatePath: priv, PublicPath: pub}
		k.Type, k.Fingerprint = inspect(priv, pub)
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i].Name < keys[j].Name })
	return keys, nil
}

// inspect determines the key type and fingerprint. The public key is
// authoritative; the private key header and the file name are fallbacks.
func inspect(priv, pub string) (keyType, fingerprint string) {
	if data, err := os.ReadFile(pub); err == nil { //nolint:gosec // G304: path from SSH directory listing
		if pk, _, _, _, err := ssh.ParseAuthorizedKey(data); err == nil {
			return TypeFromAlgorithm(pk.Type()), ssh.FingerprintSHA256(pk)
		}
	}
	return typeFromPrivateKey(priv), ""
}

// TypeFromAlgorithm maps an SSH public key algorithm to a short key type.
func TypeFromAlgorithm(algo string) string {
	switch {
	case algo == ssh.KeyAlgoED25519:
		return TypeEd25519
	case algo == ssh.KeyAlgoSKED25519:
		return TypeEd25519SK
	case algo == ssh.KeyAlgoSKECDSA256:
		return TypeECDSASK
	case strings.HasPrefix(algo, "ecdsa-"):
		return TypeECDSA
	case algo == ssh.KeyAlgoRSA:
		return TypeRSA
	case algo == ssh.KeyAlgoDSA: //nolint:staticcheck // still found in old ~/.ssh directories
		return TypeDSA
	default:
		return TypeUnknown
	}
}

func typeFromPrivateKey(priv string) string {
	f, err := os.Open(priv) //nolint:gosec // G304: path from SSH directory listing
	if err != nil {
		return TypeUnknown
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return TypeUnknown
	}
	header := sc.Text()

	switch {
	case strings.Contains(header, "OPENSSH PRIVATE KEY"):
		name := filepath.Base(priv)
		switch {
		case strings.Contains(name, "ed25519"):
			return TypeEd25519
		case strings.Contains(name, "ecdsa"):
			return TypeECDSA
		case strings.Contains(name, "rsa"):
			return TypeRSA
		}
		return TypeOpenSSH
	case strings.Contains(header, "RSA PRIVATE KEY"):
		return TypeRSA
	case strings.Contains(header, "EC PRIVATE KEY"):
		return TypeECDSA
	case strings.Contains(header, "DSA PRIVATE KEY"):
		return TypeDSA
	}
	return TypeUnknown
}

// KeyFileName returns the file name Generate uses for a profile.
func KeyFileName(profileName string) string {
	return "id_ed25519_" + profileName
}

// Generate creates an ed25519 key pair for profileName in dir with an empty
// passphrase, using ssh-keygen. It refuses to overwrite an existing key.
func Generate(r runner.CommandRunner, dir, profileName, email string) (Key, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return Key{}, fmt.Errorf("creating SSH directory %s: %w", dir, err)
	}

	priv := filepath.Join(dir, KeyFileName(profileName))
	if _, err := os.Stat(priv); err == nil {
		return Key{}, fmt.Errorf("%w: %s", ErrKeyExists, priv)
	}

	_, err := r.Run("", "ssh-keygen", "-t", "ed25519", "-C", email, "-f", priv, "-N", "")
	if err != nil {
		if errors.Is(err, runner.ErrNotInstalled) {
			return Key{}, ErrKeygenNotInstalled
		}
		return Key{}, fmt.Errorf("ssh-keygen failed to generate key: %w", err)
	}

	k := Key{
		Name:        KeyFileName(profileName),
		PrivatePath: priv,
		PublicPath:  priv + ".pub",
		Type:        TypeEd25519,
	}
	_, k.Fingerprint = inspect(k.PrivatePath, k.PublicPath)
	return k, nil
}

// ReadPublicKey returns the public key file content.
func ReadPublicKey(k Key) (string, error) {
	data, err := os.ReadFile(k.PublicPath)
	if err != nil {
		return "", fmt.Errorf("reading public key %s: %w", k.PublicPath, err)
	}
	return string(data), nil
}

// PublicKeyPath returns the .pub path for a private key path, expanding a
// leading "~".
func PublicKeyPath(privateKey string) string {
	return fsutil.ExpandHome(privateKey) + ".pub"
}

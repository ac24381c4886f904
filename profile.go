package paramcodec

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"sort"

	"gopkg.in/yaml.v2"
)

// Profile is the configuration of one API deployment.
type Profile struct {
	Name       string         `yaml:"name"`
	AppID      string         `yaml:"app_id"`
	ClientType string         `yaml:"client_type,omitempty"`
	Request    PipelineConfig `yaml:"request"`
	Response   PipelineConfig `yaml:"response"`
	Digest     DigestOptions  `yaml:"digest,omitempty"`

	// ReencodeResult makes DecodeResult return the Base64 of the decoded
	// text instead of the text itself.
	ReencodeResult bool `yaml:"reencode_result,omitempty"`
}

// Secrets shared by the built-in profiles.
var (
	clientAES = &CipherKeys{
		Key: KeySpec{Secret: "cGFsbWNsaWVudA==", Offset: 16, Length: 16},
		IV:  KeySpec{Secret: "Y2xpZW50cGFsbQ==", Offset: 0, Length: 16},
	}
	serverAES = &CipherKeys{
		Key: KeySpec{Secret: "cGFsbXNlcnZlcg==", Offset: 16, Length: 16},
		IV:  KeySpec{Secret: "c2VydmVycGFsbQ==", Offset: 0, Length: 16},
	}
	responseAES = &CipherKeys{
		Key: KeySpec{Secret: "N4EDAQpO2ejqgCoX", Offset: 16, Length: 16},
		IV:  KeySpec{Secret: "=qoKNLgdAjJbU8zx", Offset: 0, Length: 16},
	}
	responseDES = &CipherKeys{
		Key: KeySpec{Secret: "mAkJqt8coXQ96zML", Offset: 0, Length: 16},
		IV:  KeySpec{Secret: "t4ABRmeN", Offset: 24, Length: 8},
	}
	pageDES = &CipherKeys{
		Key: KeySpec{Secret: "emhlbnFpcGFsbQ==", Offset: 0, Length: 16},
		IV:  KeySpec{Secret: "emhlbnFp", Offset: 24, Length: 8},
	}
)

// builtinProfiles returns fresh copies so callers cannot alter the
// shared definitions.
func builtinProfiles() map[string]*Profile {
	copyKeys := func(k *CipherKeys) *CipherKeys {
		c := *k
		return &c
	}
	return map[string]*Profile{
		"zhenqi": {
			Name:  "zhenqi",
			AppID: "4f0e3a273d547ce6b7147bfa7ceb4b6e",
			Request: PipelineConfig{
				Stages: "1",
				AES:    copyKeys(clientAES),
			},
			Response: PipelineConfig{
				Stages: "32223",
				AES:    copyKeys(responseAES),
				DES:    copyKeys(responseDES),
			},
		},
		"aqistudy": {
			Name:  "aqistudy",
			AppID: "a01901d3caba1f362d69474674ce477f",
			Request: PipelineConfig{
				Stages: "31",
				AES:    copyKeys(clientAES),
			},
			Response: PipelineConfig{
				Stages: "312",
				AES:    copyKeys(serverAES),
				DES:    copyKeys(pageDES),
			},
		},
		"legacy": {
			Name:  "legacy",
			AppID: "a01901d3caba1f362d69474674ce477f",
			Request: PipelineConfig{
				Stages: "32223",
				DES:    copyKeys(responseDES),
			},
			Response: PipelineConfig{
				Stages: "333",
			},
		},
	}
}

// Profiles returns the names of the built-in profiles, sorted.
func Profiles() []string {
	names := make([]string, 0, 3)
	for name := range builtinProfiles() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupProfile returns a copy of the named built-in profile.
func LookupProfile(name string) (*Profile, error) {
	p, ok := builtinProfiles()[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownProfile, name)
	}
	return p, nil
}

// profileFile is the layout of a YAML profile file.
type profileFile struct {
	Profiles []*Profile `yaml:"profiles"`
}

// LoadProfiles reads YAML profile definitions, keyed by name.
func LoadProfiles(r io.Reader) (map[string]*Profile, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var f profileFile
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("paramcodec: parsing profiles: %w", err)
	}

	profiles := make(map[string]*Profile, len(f.Profiles))
	for i, p := range f.Profiles {
		if p == nil || p.Name == "" {
			return nil, fmt.Errorf("paramcodec: profile %d has no name", i)
		}
		if _, dup := profiles[p.Name]; dup {
			return nil, fmt.Errorf("paramcodec: duplicate profile %q", p.Name)
		}
		profiles[p.Name] = p
	}
	return profiles, nil
}

// LoadProfilesFile reads profiles from the YAML file at path.
func LoadProfilesFile(path string) (map[string]*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadProfiles(f)
}

// MarshalProfiles renders profiles in the layout LoadProfiles reads.
func MarshalProfiles(profiles ...*Profile) ([]byte, error) {
	return yaml.Marshal(profileFile{Profiles: profiles})
}

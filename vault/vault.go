package vault

import (
	"fmt"
	"strings"

	"github.com/AlexAkulov/reportfox/config"

	"github.com/hashicorp/vault/api"
)

type vaultPath struct {
	Mount string
	v2    bool
	Path  string
}

func (vp vaultPath) List() string {
	if vp.v2 {
		return strings.Join([]string{vp.Mount, "metadata", vp.Path}, "/")
	}
	return strings.Join([]string{vp.Mount, vp.Path}, "/")
}

func (vp vaultPath) Read() string {
	if vp.v2 {
		return strings.Join([]string{vp.Mount, "data", vp.Path}, "/")
	}
	return strings.Join([]string{vp.Mount, vp.Path}, "/")
}

func (vp vaultPath) String() string {
	return vp.Mount + "/" + vp.Path
}

func toVaultPath(path string, v2 bool) vaultPath {
	vp := vaultPath{}
	path = strings.TrimPrefix(path, "/")
	part := strings.SplitN(path, "/", 2)
	vp.Mount = part[0]
	if len(part) > 1 {
		vp.Path = part[1]
	}
	vp.v2 = v2
	return vp
}

// Vault pulls sender credentials (github token, smtp password, webhook
// headers) out of a KV engine, v1 or v2 autodetected.
type Vault struct {
	client *api.Client
	Config *config.Vault
}

func (v *Vault) Start() error {
	var err error
	if v.client, err = api.NewClient(
		&api.Config{Address: v.Config.VaultURL}); err != nil {
		return err
	}
	v.client.SetToken(v.Config.Token)
	return nil
}

func (v *Vault) checkSecretEngine(path string) (vaultPath, error) {
	vp := toVaultPath(path, false)
	secret, err := v.client.Logical().List(vp.List())
	if err == nil || secret != nil {
		return vp, nil
	}
	vp.v2 = true
	if _, err = v.client.Logical().List(vp.List()); err != nil {
		return vp, err
	}
	return vp, nil
}

// ReadAll flattens every secret under the configured paths into
// "mount/path:key" entries.
func (v *Vault) ReadAll() (map[string]string, error) {
	result := make(map[string]string)
	for _, path := range v.Config.Paths {
		r, err := v.readAll(path)
		if err != nil {
			return nil, err
		}
		for k, secret := range r {
			result[k] = secret
		}
	}
	return result, nil
}

func (v *Vault) readAll(path string) (map[string]string, error) {
	rootPath, err := v.checkSecretEngine(path)
	if err != nil {
		return nil, err
	}
	vps := v.listAll(rootPath)
	result := map[string]string{}
	for _, vp := range vps {
		if strings.HasSuffix(vp.Path, "/") {
			continue
		}
		secrets, err := v.read(vp)
		if err != nil {
			return nil, err
		}
		for name, secret := range secrets {
			result[vp.String()+":"+name] = secret
		}
	}
	return result, nil
}

func (v *Vault) list(vp vaultPath) ([]vaultPath, error) {
	secret, err := v.client.Logical().List(vp.List())
	if err != nil {
		return nil, err
	}
	if secret == nil {
		return nil, nil
	}
	keys, ok := secret.Data["keys"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("no result")
	}
	out := make([]vaultPath, len(keys))
	for i := range keys {
		out[i] = vaultPath{
			Mount: vp.Mount,
			Path:  vp.Path + keys[i].(string),
			v2:    vp.v2,
		}
	}
	return out, nil
}

func (v *Vault) listAll(vp vaultPath) []vaultPath {
	result, err := v.list(vp)
	if err != nil {
		return nil
	}
	all := result
	for _, k := range result {
		if !strings.HasSuffix(k.Path, "/") {
			continue
		}
		if r := v.listAll(k); r != nil {
			all = append(all, r...)
		}
	}
	return all
}

func (v *Vault) read(vp vaultPath) (map[string]string, error) {
	out := make(map[string]string)
	secret, err := v.client.Logical().Read(vp.Read())
	if err != nil {
		return nil, fmt.Errorf("can't read secret with: %v", err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("no data to read at path, %s", vp.Read())
	}
	for k, raw := range secret.Data {
		switch t := raw.(type) {
		case string:
			out[k] = t
		case map[string]interface{}:
			if k == "data" {
				for x, y := range t {
					if z, ok := y.(string); ok {
						out[x] = z
					}
				}
			}
		default:
			return nil, fmt.Errorf("error reading value at %s, key=%s, type=%T", vp.Read(), k, raw)
		}
	}
	return out, nil
}

// Lookup finds the first flattened secret whose key name matches, e.g.
// Lookup(secrets, "github_token").
func Lookup(secrets map[string]string, name string) string {
	for k, v := range secrets {
		if strings.HasSuffix(k, ":"+name) {
			return v
		}
	}
	return ""
}

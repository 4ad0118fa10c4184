package cloudinary

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fortlifegroup/sst-backend/pkg/config"
)

// ErrNotConfigured signals missing Cloudinary credentials.
var ErrNotConfigured = errors.New("cloudinary is not configured")

// Signer produces signed upload parameters for direct browser uploads.
type Signer struct {
	cloudName string
	apiKey    string
	apiSecret string
}

func NewSigner(cfg config.CloudinaryConfig) (*Signer, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}
	return &Signer{
		cloudName: cfg.ResolvedCloudName(),
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
	}, nil
}

func (s *Signer) CloudName() string { return s.cloudName }
func (s *Signer) APIKey() string    { return s.apiKey }

// Sign computes the upload signature over the provided parameters. Keys are
// sorted, joined as key=value pairs with '&', and the API secret is appended
// before hashing with sha1, matching Cloudinary's signed-upload contract.
func (s *Signer) Sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, params[k]))
	}

	payload := strings.Join(pairs, "&") + s.apiSecret
	sum := sha1.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// Folder builds the tenant-scoped folder path for an upload.
func Folder(companyID, kindFolder string) string {
	return fmt.Sprintf("companies/%s/%s", companyID, kindFolder)
}

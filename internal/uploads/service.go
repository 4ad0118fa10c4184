package uploads

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fortlifegroup/sst-backend/pkg/cloudinary"
	"github.com/fortlifegroup/sst-backend/pkg/enums"
	pkgerrors "github.com/fortlifegroup/sst-backend/pkg/errors"
)

// SignatureRequest names the upload category the client wants to sign.
type SignatureRequest struct {
	Kind string `json:"kind"`
}

// SignatureDTO carries everything a browser needs for a direct signed
// upload to Cloudinary.
type SignatureDTO struct {
	CloudName string `json:"cloudName"`
	APIKey    string `json:"apiKey"`
	Timestamp int64  `json:"timestamp"`
	Folder    string `json:"folder"`
	Signature string `json:"signature"`
}

type uploadSigner interface {
	CloudName() string
	APIKey() string
	Sign(params map[string]string) string
}

// Service signs direct upload requests scoped to the tenant's media tree.
type Service interface {
	SignUpload(ctx context.Context, companyID string, req SignatureRequest) (*SignatureDTO, error)
}

type service struct {
	signer uploadSigner
	now    func() time.Time
}

// NewService builds the upload signing service. A nil signer is allowed and
// reports the missing configuration at request time, so the API can boot
// without Cloudinary credentials.
func NewService(signer uploadSigner) Service {
	return &service{signer: signer, now: time.Now}
}

func (s *service) SignUpload(ctx context.Context, companyID string, req SignatureRequest) (*SignatureDTO, error) {
	kind, err := enums.ParseUploadKind(strings.TrimSpace(req.Kind))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown upload kind %q", req.Kind))
	}

	if s.signer == nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, cloudinary.ErrNotConfigured, "image uploads are not configured")
	}

	folder := cloudinary.Folder(companyID, kind.Folder())
	timestamp := s.now().Unix()
	signature := s.signer.Sign(map[string]string{
		"folder":    folder,
		"timestamp": strconv.FormatInt(timestamp, 10),
	})

	return &SignatureDTO{
		CloudName: s.signer.CloudName(),
		APIKey:    s.signer.APIKey(),
		Timestamp: timestamp,
		Folder:    folder,
		Signature: signature,
	}, nil
}

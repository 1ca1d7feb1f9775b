//go:build integration

package integration

import (
	"github.com/bnema/ocicomp/internal/domain"
)

func (s *RegistrySuite) metadata(name, tag string) *domain.ComponentMetadata {
	meta, err := domain.ParseComponentMetadata([]byte(`{"name":"` + name + `","tag":"` + tag + `","description":"integration","author":"ci"}`))
	s.Require().NoError(err)
	return meta
}

func (s *RegistrySuite) TestHealth() {
	s.Require().NoError(s.svc.Health(s.ctx))
}

func (s *RegistrySuite) TestPushFetchRoundTrip() {
	binary := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	result, err := s.svc.Push(s.ctx, &domain.Component{
		Metadata: s.metadata("it/roundtrip", "v1.0.0"),
		Binary:   binary,
	})
	s.Require().NoError(err)
	s.Equal("it/roundtrip", result.Repository)
	s.NotEmpty(result.ManifestDigest)

	fetched, err := s.svc.Fetch(s.ctx, "it/roundtrip", "v1.0.0")
	s.Require().NoError(err)
	s.Equal(binary, fetched.Binary)
	s.JSONEq(`{"name":"it/roundtrip","tag":"v1.0.0","description":"integration","author":"ci"}`, string(fetched.Config))
	s.Equal("integration", fetched.Annotations["org.opencontainers.image.description"])
}

func (s *RegistrySuite) TestEmptyBinary() {
	_, err := s.svc.Push(s.ctx, &domain.Component{
		Metadata: s.metadata("it/empty", "v1"),
		Binary:   []byte{},
	})
	s.Require().NoError(err)

	fetched, err := s.svc.Fetch(s.ctx, "it/empty", "v1")
	s.Require().NoError(err)
	s.NotNil(fetched.Binary)
	s.Empty(fetched.Binary)
}

func (s *RegistrySuite) TestMetadataOnlyUpdateKeepsBinary() {
	binary := []byte("first build")
	_, err := s.svc.Push(s.ctx, &domain.Component{Metadata: s.metadata("it/update", "v1"), Binary: binary})
	s.Require().NoError(err)

	meta, err := domain.ParseComponentMetadata([]byte(`{"name":"it/update","tag":"v1","description":"patched"}`))
	s.Require().NoError(err)

	_, err = s.svc.Update(s.ctx, &domain.Component{Name: "it/update", Reference: "v1", Metadata: meta})
	s.Require().NoError(err)

	fetched, err := s.svc.Fetch(s.ctx, "it/update", "v1")
	s.Require().NoError(err)
	s.Equal(binary, fetched.Binary)
	s.Equal("patched", fetched.Annotations["org.opencontainers.image.description"])
}

func (s *RegistrySuite) TestFetchMissing() {
	_, err := s.svc.Fetch(s.ctx, "it/missing", "v1")
	s.ErrorIs(err, domain.ErrNotFound)
}

// The reference registry only deletes manifests by digest.
func (s *RegistrySuite) TestDeleteTwice() {
	result, err := s.svc.Push(s.ctx, &domain.Component{Metadata: s.metadata("it/delete", "v1"), Binary: []byte("x")})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Delete(s.ctx, "it/delete", result.ManifestDigest))

	err = s.svc.Delete(s.ctx, "it/delete", result.ManifestDigest)
	s.ErrorIs(err, domain.ErrNotFound)

	_, err = s.svc.Fetch(s.ctx, "it/delete", result.ManifestDigest)
	s.ErrorIs(err, domain.ErrNotFound)
}

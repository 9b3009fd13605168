package imagesapi

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"

	"club-site/internal/domain/admins"
	"club-site/internal/domain/events"
	"club-site/internal/domain/media"
	"club-site/internal/errmodel"
	"club-site/internal/infra/blob"
	"club-site/internal/infra/imaging"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("club-site/images")

var uploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "club_image_uploads_total",
	Help: "Image uploads by outcome (new, duplicate, rejected, failed).",
}, []string{"outcome"})

func init() {
	prometheus.MustRegister(uploadsTotal)
}

// Revalidator drops cached pages after images change under them.
type Revalidator interface {
	Revalidate(ctx context.Context, paths ...string)
}

type Service struct {
	db    *gorm.DB
	blobs blob.Store
	pages Revalidator
}

func NewService(db *gorm.DB, blobs blob.Store, pages Revalidator) *Service {
	return &Service{db: db, blobs: blobs, pages: pages}
}

// Upload converts data to WebP and stores it once per distinct content. The
// bool result reports whether an identical image already existed.
func (s *Service) Upload(ctx context.Context, admin *admins.AllowedAdmin, data []byte) (*media.Image, bool, error) {
	ctx, span := tracer.Start(ctx, "images.Upload")
	defer span.End()

	if admin == nil {
		return nil, false, errmodel.Unauthorized()
	}

	webp, err := imaging.ToWebP(data)
	if err != nil {
		if errors.Is(err, imaging.ErrUndecodable) {
			uploadsTotal.WithLabelValues("rejected").Inc()
			return nil, false, errmodel.Validation("Could not process image")
		}
		uploadsTotal.WithLabelValues("failed").Inc()
		log.Printf("❌ image conversion: %v", err)
		return nil, false, errmodel.Unexpected("Internal server error", err)
	}

	sum := sha256.Sum256(webp)
	hash := hex.EncodeToString(sum[:])

	db := s.db.WithContext(ctx)
	if existing, err := findByHash(db, hash); err != nil {
		uploadsTotal.WithLabelValues("failed").Inc()
		log.Printf("❌ image lookup %s: %v", hash, err)
		return nil, false, errmodel.Unexpected("Internal server error", err)
	} else if existing != nil {
		uploadsTotal.WithLabelValues("duplicate").Inc()
		return existing, true, nil
	}

	key := hash + ".webp"
	url, err := s.blobs.Put(ctx, key, webp, imaging.ContentType)
	if err != nil {
		uploadsTotal.WithLabelValues("failed").Inc()
		log.Printf("❌ blob upload %s: %v", key, err)
		return nil, false, errmodel.Upstream("Upload failed", err)
	}

	img := media.Image{
		ID:         uuid.NewString(),
		StorageKey: key,
		URL:        url,
		Hash:       hash,
		IsDraft:    true,
	}
	if err := db.Create(&img).Error; err != nil {
		// a concurrent upload of the same bytes may have won the insert
		if existing, lookupErr := findByHash(db, hash); lookupErr == nil && existing != nil {
			uploadsTotal.WithLabelValues("duplicate").Inc()
			return existing, true, nil
		}
		uploadsTotal.WithLabelValues("failed").Inc()
		log.Printf("❌ image insert %s: %v", hash, err)
		return nil, false, errmodel.Unexpected("Internal server error", err)
	}

	uploadsTotal.WithLabelValues("new").Inc()
	return &img, false, nil
}

// List returns images newest first. Drafts are left out unless asked for.
func (s *Service) List(ctx context.Context, admin *admins.AllowedAdmin, withDrafts bool) ([]media.Image, error) {
	if admin == nil {
		return nil, errmodel.Unauthorized()
	}

	q := s.db.WithContext(ctx).Order("created_at DESC")
	if !withDrafts {
		q = q.Where("is_draft = ?", false)
	}
	out := []media.Image{}
	if err := q.Find(&out).Error; err != nil {
		log.Printf("❌ list images: %v", err)
		return nil, errmodel.Unexpected("Failed to load images", err)
	}
	return out, nil
}

// Publish clears the draft flag.
func (s *Service) Publish(ctx context.Context, admin *admins.AllowedAdmin, id string) error {
	if admin == nil {
		return errmodel.Unauthorized()
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return errmodel.NotFound("Image not found")
	}
	id = u.String()

	res := s.db.WithContext(ctx).Model(&media.Image{}).Where("id = ?", id).Update("is_draft", false)
	if res.Error != nil {
		log.Printf("❌ publish image %s: %v", id, res.Error)
		return errmodel.Unexpected("Failed to publish image", res.Error)
	}
	if res.RowsAffected == 0 {
		return errmodel.NotFound("Image not found")
	}

	var eventIDs []string
	if err := s.db.WithContext(ctx).Model(&events.Event{}).Where("image_id = ?", id).Pluck("id", &eventIDs).Error; err != nil {
		return errmodel.Unexpected("Failed to publish image", err)
	}
	s.revalidate(ctx, eventIDs)
	return nil
}

// Delete removes the row and then the stored blob. Events pointing at the
// image lose the reference through ON DELETE SET NULL.
func (s *Service) Delete(ctx context.Context, admin *admins.AllowedAdmin, id string) error {
	ctx, span := tracer.Start(ctx, "images.Delete")
	defer span.End()

	if admin == nil {
		return errmodel.Unauthorized()
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return errmodel.NotFound("Image not found")
	}
	id = u.String()

	db := s.db.WithContext(ctx)
	var img media.Image
	if err := db.First(&img, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errmodel.NotFound("Image not found")
		}
		return errmodel.Unexpected("Failed to delete image", err)
	}

	var eventIDs []string
	if err := db.Model(&events.Event{}).Where("image_id = ?", id).Pluck("id", &eventIDs).Error; err != nil {
		return errmodel.Unexpected("Failed to delete image", err)
	}

	if err := db.Delete(&media.Image{}, "id = ?", id).Error; err != nil {
		log.Printf("❌ delete image %s: %v", id, err)
		return errmodel.Unexpected("Failed to delete image", err)
	}

	s.revalidate(ctx, eventIDs)

	if err := s.blobs.Delete(ctx, img.StorageKey); err != nil {
		log.Printf("❌ delete blob %s: %v", img.StorageKey, err)
		return errmodel.Upstream("Failed to delete stored file", err)
	}
	return nil
}

// revalidate drops cached event pages that embed the image.
func (s *Service) revalidate(ctx context.Context, eventIDs []string) {
	if s.pages == nil {
		return
	}
	paths := []string{"/admin/events", "/events"}
	for _, eid := range eventIDs {
		paths = append(paths, "/events/"+eid)
	}
	s.pages.Revalidate(ctx, paths...)
}

func findByHash(db *gorm.DB, hash string) (*media.Image, error) {
	var img media.Image
	err := db.Where("hash = ?", hash).First(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

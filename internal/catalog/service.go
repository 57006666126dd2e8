package catalog

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	pkgerrors "github.com/mymessage/storefront-gateway/pkg/errors"
	"github.com/mymessage/storefront-gateway/pkg/logger"
)

const (
	collectionPageSize    = 10
	mediaPageSize         = 10
	productMediaPageSize  = 20
	videoContentType      = "VIDEO"
	defaultFanoutParallel = 4
)

// VideoSource is one encoding of a video asset.
type VideoSource struct {
	URL      string `json:"url"`
	MimeType string `json:"mimeType"`
	Format   string `json:"format"`
	Height   int    `json:"height"`
	Width    int    `json:"width"`
}

// RepresentativeMedia is the single video chosen to depict a collection.
type RepresentativeMedia struct {
	Sources         []VideoSource `json:"sources"`
	PreviewImageURL string        `json:"previewImageUrl,omitempty"`
}

// CollectionMedia pairs a collection with its representative media, which is
// nil when no qualifying video was found or the dependent fetch failed.
type CollectionMedia struct {
	ID          string               `json:"id"`
	Handle      string               `json:"handle"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Media       *RepresentativeMedia `json:"representativeMedia"`
}

// ProductVideo is one qualifying video on a product.
type ProductVideo struct {
	ID              string        `json:"id"`
	Alt             string        `json:"alt,omitempty"`
	ContentType     string        `json:"mediaContentType"`
	Sources         []VideoSource `json:"sources"`
	PreviewImageURL string        `json:"previewImageUrl,omitempty"`
}

// ProductMedia is the full video listing for one product.
type ProductMedia struct {
	ProductID     string         `json:"productId"`
	ProductTitle  string         `json:"productTitle"`
	ProductHandle string         `json:"productHandle"`
	Videos        []ProductVideo `json:"videos"`
}

type graphqlDoer interface {
	Do(ctx context.Context, query string, variables map[string]any, out any) error
}

// Service answers media-aggregation questions against the admin API.
type Service interface {
	CollectionsWithMedia(ctx context.Context) ([]CollectionMedia, error)
	ProductMedia(ctx context.Context, handle string) (*ProductMedia, error)
}

type service struct {
	admin  graphqlDoer
	logg   *logger.Logger
	fanout int
}

// Option configures optional service behavior.
type Option func(*service)

// WithFanoutLimit caps how many dependent fetches run at once.
func WithFanoutLimit(limit int) Option {
	return func(s *service) {
		if limit > 0 {
			s.fanout = limit
		}
	}
}

// NewService builds the aggregation service on the admin GraphQL client.
func NewService(admin graphqlDoer, logg *logger.Logger, opts ...Option) (Service, error) {
	if admin == nil {
		return nil, fmt.Errorf("admin graphql client required")
	}
	svc := &service{
		admin:  admin,
		logg:   logg,
		fanout: defaultFanoutParallel,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc, nil
}

// CollectionsWithMedia fetches the first page of collections, then fans out
// one dependent fetch per collection to pick a representative video from its
// first product. A dependent fetch failing only blanks that collection's
// media; the primary fetch failing aborts the whole call. Output order is
// the order collections came back in.
func (s *service) CollectionsWithMedia(ctx context.Context) ([]CollectionMedia, error) {
	var page collectionsData
	if err := s.admin.Do(ctx, collectionsQuery, map[string]any{"first": collectionPageSize}, &page); err != nil {
		return nil, err
	}

	edges := page.Collections.Edges
	results := make([]CollectionMedia, len(edges))
	gaps := make([]error, len(edges))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanout)
	for i, edge := range edges {
		i := i
		results[i] = CollectionMedia{
			ID:          edge.Node.ID,
			Handle:      edge.Node.Handle,
			Title:       edge.Node.Title,
			Description: edge.Node.Description,
		}
		g.Go(func() error {
			media, err := s.representativeMedia(gctx, edges[i].Node.ID)
			if err != nil {
				// Captured per slot; never returned, so one failing
				// fetch cannot cancel its siblings.
				gaps[i] = fmt.Errorf("collection %s: %w", edges[i].Node.Handle, err)
				return nil
			}
			results[i].Media = media
			return nil
		})
	}
	_ = g.Wait()

	if combined := multierr.Combine(gaps...); combined != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
			"gaps":  len(multierr.Errors(combined)),
			"total": len(edges),
			"error": combined.Error(),
		}), "catalog.collections_with_media.partial")
	}

	return results, nil
}

// representativeMedia returns the first VIDEO media with a non-empty source
// list on the collection's first product, or nil when the collection has no
// products or no qualifying media.
func (s *service) representativeMedia(ctx context.Context, collectionID string) (*RepresentativeMedia, error) {
	var data collectionProductsData
	vars := map[string]any{"id": collectionID, "mediaCount": mediaPageSize}
	if err := s.admin.Do(ctx, collectionFirstProductMediaQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.Collection == nil || len(data.Collection.Products.Edges) == 0 {
		return nil, nil
	}

	product := data.Collection.Products.Edges[0].Node
	for _, mediaEdge := range product.Media.Edges {
		node := mediaEdge.Node
		if node.MediaContentType != videoContentType || len(node.Sources) == 0 {
			continue
		}
		return &RepresentativeMedia{
			Sources:         mapSources(node.Sources),
			PreviewImageURL: node.previewImageURL(),
		}, nil
	}
	return nil, nil
}

// ProductMedia fetches a product by handle and extracts every qualifying
// video. A missing handle is NOT_FOUND, not a generic failure.
func (s *service) ProductMedia(ctx context.Context, handle string) (*ProductMedia, error) {
	if handle == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product handle is required")
	}

	var data productByHandleData
	vars := map[string]any{"handle": handle, "mediaCount": productMediaPageSize}
	if err := s.admin.Do(ctx, productMediaByHandleQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.ProductByHandle == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %q not found", handle))
	}

	product := data.ProductByHandle
	videos := []ProductVideo{}
	for _, mediaEdge := range product.Media.Edges {
		node := mediaEdge.Node
		if node.MediaContentType != videoContentType || len(node.Sources) == 0 {
			continue
		}
		videos = append(videos, ProductVideo{
			ID:              node.ID,
			Alt:             node.Alt,
			ContentType:     node.MediaContentType,
			Sources:         mapSources(node.Sources),
			PreviewImageURL: node.previewImageURL(),
		})
	}

	return &ProductMedia{
		ProductID:     product.ID,
		ProductTitle:  product.Title,
		ProductHandle: product.Handle,
		Videos:        videos,
	}, nil
}

func mapSources(sources []mediaSource) []VideoSource {
	mapped := make([]VideoSource, 0, len(sources))
	for _, src := range sources {
		mapped = append(mapped, VideoSource{
			URL:      src.URL,
			MimeType: src.MimeType,
			Format:   src.Format,
			Height:   src.Height,
			Width:    src.Width,
		})
	}
	return mapped
}

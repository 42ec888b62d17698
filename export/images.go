package export

import (
	"context"
	"encoding/base64"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"gdex/config"
	"gdex/css"
	"gdex/utils/images"
)

// imagesDir is the subdirectory next to index.html that holds image files
// when they are not embedded.
const imagesDir = "images"

// Fetcher downloads image bytes from a pre-signed content URL.
type Fetcher interface {
	Image(ctx context.Context, uri string) ([]byte, error)
}

// pictures resolves embedded objects to img sources. Every object downloads
// and normalizes at most once, failures burn a placeholder or drop the image
// but never abort the document.
type pictures struct {
	fetch    Fetcher
	cfg      *config.ImagesConfig
	broken   []byte
	log      *zap.Logger
	seen     map[string]string
	files    map[string][]byte
	warnings int
}

func newPictures(fetch Fetcher, cfg *config.ImagesConfig, broken []byte, log *zap.Logger) *pictures {
	return &pictures{
		fetch:  fetch,
		cfg:    cfg,
		broken: broken,
		log:    log,
		seen:   make(map[string]string),
		files:  make(map[string][]byte),
	}
}

// resolve returns the img src for an object, ok false when no image could be
// produced. Only context cancellation comes back as an error.
func (p *pictures) resolve(ctx context.Context, objectID, uri string, wPx, hPx int) (string, bool, error) {
	if src, done := p.seen[objectID]; done {
		return src, src != "", nil
	}

	img := p.download(ctx, objectID, uri)
	if img == nil {
		if err := ctx.Err(); err != nil {
			return "", false, err
		}
		p.warnings++
		if img = p.placeholder(objectID, wPx, hPx); img == nil {
			p.seen[objectID] = ""
			return "", false, nil
		}
	}

	src := p.store(objectID, img)
	p.seen[objectID] = src
	return src, true, nil
}

func (p *pictures) download(ctx context.Context, objectID, uri string) *images.Image {
	if p.fetch == nil {
		p.log.Warn("No image fetcher available", zap.String("objectId", objectID))
		return nil
	}
	data, err := p.fetch.Image(ctx, uri)
	if err != nil {
		p.log.Warn("Unable to download image", zap.String("objectId", objectID), zap.Error(err))
		return nil
	}
	img, err := images.Normalize(data, p.cfg.ScaleWidth, p.cfg.JPEGQuality)
	if err != nil {
		p.log.Warn("Unable to prepare image", zap.String("objectId", objectID), zap.Error(err))
		return nil
	}
	return img
}

// placeholder rasterizes the torn photo vignette at the natural size of the
// missing image.
func (p *pictures) placeholder(objectID string, wPx, hPx int) *images.Image {
	if !p.cfg.UseBroken || len(p.broken) == 0 {
		return nil
	}
	img, err := images.RasterizeSVG(p.broken, wPx, hPx)
	if err != nil {
		p.log.Warn("Unable to rasterize placeholder", zap.String("objectId", objectID), zap.Error(err))
		return nil
	}
	data, err := images.Encode(img, "png", p.cfg.JPEGQuality)
	if err != nil {
		p.log.Warn("Unable to encode placeholder", zap.String("objectId", objectID), zap.Error(err))
		return nil
	}
	b := img.Bounds()
	return &images.Image{Data: data, MIME: "image/png", Ext: "png", Width: b.Dx(), Height: b.Dy()}
}

// store embeds the image as a data URI or files it for the images
// subdirectory, returning the src value either way.
func (p *pictures) store(objectID string, img *images.Image) string {
	if p.cfg.Embed {
		return "data:" + img.MIME + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
	}
	name := "image_" + config.CleanFileName(objectID) + "." + img.Ext
	p.files[name] = img.Data
	return imagesDir + "/" + name
}

// appendImage renders one inline object reference. Objects with no usable
// metadata render nothing at all the way the editor itself skips them, a
// failed download leaves the placeholder or a comment depending on
// configuration.
func (r *Renderer) appendImage(ctx context.Context, parent *etree.Element, objectID string) error {
	obj := r.doc.EmbeddedObjectFor(objectID)
	if obj == nil || obj.ImageProperties == nil || obj.ImageProperties.ContentURI == "" {
		return nil
	}

	sx, sy := obj.Transform.Scales()
	var wPx, hPx int
	if obj.Size != nil {
		wPx = css.PtToPx(obj.Size.Width.Points() * sx)
		hPx = css.PtToPx(obj.Size.Height.Points() * sy)
	}

	src, ok, err := r.pics.resolve(ctx, objectID, obj.ImageProperties.ContentURI, wPx, hPx)
	if err != nil {
		return err
	}
	if !ok {
		parent.CreateComment(" image " + objectID + " unavailable ")
		return nil
	}

	img := parent.CreateElement("img")
	img.CreateAttr("src", src)
	alt := obj.Title
	if alt == "" {
		alt = obj.Description
	}
	img.CreateAttr("alt", alt)

	var st css.Inline
	crop := obj.ImageProperties.CropProperties
	if !crop.Zero() && wPx > 0 && hPx > 0 {
		st.AddPx("width", wPx)
		st.AddPx("height", hPx)
		st.Add("object-fit", "cover")
		st.Add("object-position", css.Num(crop.OffsetLeft*100)+"% "+css.Num(crop.OffsetTop*100)+"%")
	} else if wPx > 0 && hPx > 0 {
		st.AddPx("max-width", wPx)
		st.AddPx("max-height", hPx)
	}
	if dx, dy := obj.Transform.Offsets(); dx != 0 || dy != 0 {
		st.Add("transform", "translate("+css.Px(css.PtToPx(dx))+", "+css.Px(css.PtToPx(dy))+")")
	}
	if !st.Empty() {
		img.CreateAttr("style", st.String())
	}
	return nil
}

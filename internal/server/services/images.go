package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"
	"time"

	_ "image/jpeg" // register decoders for uploaded formats

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	sc "github.com/wstore/webshop/internal/server/config"
)

// Product pictures are normalized to a fixed thumbnail frame before upload.
const (
	imageWidth  = 384
	imageHeight = 225
)

// Seams for tests.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
)

// ImageService resizes product pictures and uploads them to an
// S3-compatible bucket, returning the public URL recorded on the product.
type ImageService struct {
	config *sc.Config
}

func NewImageService(config *sc.Config) *ImageService {
	return &ImageService{config: config}
}

// randomStorageKey spreads objects by date and gives each upload a unique name.
func randomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("products/%d/%d/%d/%v.png", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *ImageService) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})
	return client, nil
}

// Store decodes the uploaded picture, fits it into the thumbnail frame
// (aspect preserved, transparent letterboxing), and uploads the PNG.
func (s *ImageService) Store(ctx context.Context, r io.Reader) (string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("error decoding image: %w", err)
	}

	resized := fitImage(src, imageWidth, imageHeight)

	var buf bytes.Buffer
	if err := png.Encode(&buf, resized); err != nil {
		return "", fmt.Errorf("error encoding image: %w", err)
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return "", fmt.Errorf("error creating s3 client: %w", err)
	}

	key := randomStorageKey()
	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.S3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading image: %w", err)
	}

	return strings.TrimRight(s.config.PublicImageBaseURL, "/") + "/" + key, nil
}

// fitImage scales src to fit inside a w×h transparent canvas, centered,
// preserving the aspect ratio.
func fitImage(src image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 {
		return dst
	}

	scaleX := float64(w) / float64(sb.Dx())
	scaleY := float64(h) / float64(sb.Dy())
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}

	tw := int(float64(sb.Dx()) * scale)
	th := int(float64(sb.Dy()) * scale)
	x0 := (w - tw) / 2
	y0 := (h - th) / 2

	draw.CatmullRom.Scale(dst, image.Rect(x0, y0, x0+tw, y0+th), src, sb, draw.Over, nil)
	return dst
}

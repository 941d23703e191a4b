package transcribe

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awstranscribe "github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"
	"github.com/aws/smithy-go"

	"github.com/debatelab/speakerkit/errors"
	"github.com/debatelab/speakerkit/logger"
)

// DefaultPollInterval is how often job status is checked while waiting.
const DefaultPollInterval = 10 * time.Second

// API is the subset of the Transcribe client the ingester uses.
type API interface {
	StartTranscriptionJob(ctx context.Context, in *awstranscribe.StartTranscriptionJobInput, opts ...func(*awstranscribe.Options)) (*awstranscribe.StartTranscriptionJobOutput, error)
	GetTranscriptionJob(ctx context.Context, in *awstranscribe.GetTranscriptionJobInput, opts ...func(*awstranscribe.Options)) (*awstranscribe.GetTranscriptionJobOutput, error)
}

// JobSpec describes one transcription job.
type JobSpec struct {
	// Name is the job name, unique within the AWS account and region.
	Name string
	// Bucket holds both the input media and the job output.
	Bucket string
	// MediaKey is the input media object key.
	MediaKey string
	// MediaFormat is the media container format (e.g. "mp4", "wav").
	MediaFormat string
	// LanguageCode is the spoken language (e.g. "en-US").
	LanguageCode string
	// MaxSpeakers enables diarization when greater than zero.
	MaxSpeakers int
}

// Client starts Transcribe jobs and waits for their completion.
type Client struct {
	api          API
	log          *logger.Logger
	pollInterval time.Duration
}

// NewClient creates a job client. A zero pollInterval uses the default.
func NewClient(api API, log *logger.Logger, pollInterval time.Duration) *Client {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Client{
		api:          api,
		log:          log.WithComponent("transcribe"),
		pollInterval: pollInterval,
	}
}

// EnsureJob starts the job unless it already exists, then waits until it
// completes. A job that ends in the failed state returns JOB_FAILED.
func (c *Client) EnsureJob(ctx context.Context, spec JobSpec) error {
	if spec.Name == "" {
		return errors.MissingField("name")
	}
	if spec.Bucket == "" {
		return errors.MissingField("bucket")
	}
	if spec.MediaKey == "" {
		return errors.MissingField("media_key")
	}

	status, exists, err := c.jobStatus(ctx, spec.Name)
	if err != nil {
		return err
	}
	if !exists {
		if err := c.startJob(ctx, spec); err != nil {
			return err
		}
		c.log.Info("transcription job started", map[string]interface{}{"job": spec.Name})
	} else {
		c.log.Info("transcription job already exists", map[string]interface{}{
			"job":    spec.Name,
			"status": string(status),
		})
	}

	return c.waitForJob(ctx, spec.Name)
}

func (c *Client) startJob(ctx context.Context, spec JobSpec) error {
	mediaURI := fmt.Sprintf("s3://%s/%s", spec.Bucket, spec.MediaKey)
	input := &awstranscribe.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(spec.Name),
		LanguageCode:         types.LanguageCode(spec.LanguageCode),
		MediaFormat:          types.MediaFormat(spec.MediaFormat),
		Media: &types.Media{
			MediaFileUri: aws.String(mediaURI),
		},
		OutputBucketName: aws.String(spec.Bucket),
	}
	if spec.MaxSpeakers > 0 {
		input.Settings = &types.Settings{
			ShowSpeakerLabels: aws.Bool(true),
			MaxSpeakerLabels:  aws.Int32(int32(spec.MaxSpeakers)),
		}
	}

	if _, err := c.api.StartTranscriptionJob(ctx, input); err != nil {
		return errors.FetchFailed(mediaURI, err)
	}
	return nil
}

func (c *Client) waitForJob(ctx context.Context, name string) error {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		status, exists, err := c.jobStatus(ctx, name)
		if err != nil {
			return err
		}
		if !exists {
			return errors.NotFound("transcription job", name)
		}
		switch status {
		case types.TranscriptionJobStatusCompleted:
			return nil
		case types.TranscriptionJobStatusFailed:
			return errors.JobFailed(name, "job ended in the failed state")
		}

		c.log.Debug("waiting for transcription job", map[string]interface{}{
			"job":    name,
			"status": string(status),
		})
		select {
		case <-ctx.Done():
			return errors.Internal(ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *Client) jobStatus(ctx context.Context, name string) (types.TranscriptionJobStatus, bool, error) {
	out, err := c.api.GetTranscriptionJob(ctx, &awstranscribe.GetTranscriptionJobInput{
		TranscriptionJobName: aws.String(name),
	})
	if err != nil {
		if isJobNotFound(err) {
			return "", false, nil
		}
		return "", false, errors.FetchFailed("transcription job "+name, err)
	}
	return out.TranscriptionJob.TranscriptionJobStatus, true, nil
}

// isJobNotFound detects the absent-job case. Transcribe reports it as a
// NotFoundException or, for GetTranscriptionJob, a BadRequestException
// whose message says the job couldn't be found.
func isJobNotFound(err error) bool {
	var notFound *types.NotFoundException
	if stderrors.As(err, &notFound) {
		return true
	}
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "BadRequestException" &&
			strings.Contains(apiErr.ErrorMessage(), "couldn't be found")
	}
	return false
}

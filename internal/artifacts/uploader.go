package artifacts

import (
	"context"
	"fmt"
	"strings"

	"evorun/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Uploader 把每个任务捕获的控制台输出推到对象存储，方便事后翻查
// 未配置时为 nil，所有方法对 nil 安全
type Uploader struct {
	client *minio.Client
	bucket string
}

func New(cfg config.MinioConfig) (*Uploader, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return &Uploader{client: client, bucket: cfg.Bucket}, nil
}

// UploadConsoleLog 上传一个任务的完整控制台输出
// Key 形如 <run-id>/<job-name>/console.log
func (u *Uploader) UploadConsoleLog(ctx context.Context, runID, jobName, output string) error {
	if u == nil || u.client == nil {
		return nil
	}

	key := fmt.Sprintf("%s/%s/console.log", runID, jobName)
	reader := strings.NewReader(output)
	_, err := u.client.PutObject(ctx, u.bucket, key, reader, int64(len(output)),
		minio.PutObjectOptions{ContentType: "text/plain"})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

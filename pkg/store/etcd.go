package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"evorun/pkg/model"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// 定义 Key 的前缀 (Schema Design)
const (
	JobKeyPrefix = "/evorun/jobs/"
	RunKeyPrefix = "/evorun/runs/"
	LogKeyPrefix = "/evorun/logs/"
)

type EtcdLedger struct {
	client *clientv3.Client
}

// NewEtcdLedger 初始化 Etcd 连接
func NewEtcdLedger(endpoints []string) (*EtcdLedger, error) {
	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   endpoints,
		DialTimeout: 5 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	return &EtcdLedger{client: cli}, nil
}

// ---------------------------------------------------------
// Job 相关实现
// ---------------------------------------------------------

func (e *EtcdLedger) CreateJob(ctx context.Context, job *model.Job) error {
	key := JobKeyPrefix + job.ID
	return e.putValue(ctx, key, job)
}

func (e *EtcdLedger) GetJob(ctx context.Context, id string) (*model.Job, error) {
	resp, err := e.client.Get(ctx, JobKeyPrefix+id)
	if err != nil {
		return nil, err
	}
	if len(resp.Kvs) == 0 {
		return nil, fmt.Errorf("job not found: %s", id)
	}

	var job model.Job
	if err := json.Unmarshal(resp.Kvs[0].Value, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (e *EtcdLedger) UpdateJob(ctx context.Context, job *model.Job) error {
	key := JobKeyPrefix + job.ID
	return e.putValue(ctx, key, job)
}

// WatchJobs 核心难点：将 Etcd 的 Watch 转换为业务 Channel
func (e *EtcdLedger) WatchJobs(ctx context.Context) <-chan JobEvent {
	eventChan := make(chan JobEvent)

	// 启动一个协程在后台一直监听
	go func() {
		// 监听 /evorun/jobs/ 前缀下的所有变化
		watchChan := e.client.Watch(ctx, JobKeyPrefix, clientv3.WithPrefix())

		for watchResp := range watchChan {
			for _, ev := range watchResp.Events {
				var eventType JobEventType
				switch ev.Type {
				case clientv3.EventTypePut:
					eventType = JobUpdate // 这里的 Create 和 Update 在 Etcd 都是 Put
				case clientv3.EventTypeDelete:
					eventType = JobDelete
				}

				// 反序列化 Job 数据
				var job model.Job
				if err := json.Unmarshal(ev.Kv.Value, &job); err != nil {
					log.Printf("[Etcd] Failed to unmarshal job: %v", err)
					continue
				}

				// 发送给观察者
				eventChan <- JobEvent{
					Type: eventType,
					Job:  &job,
				}
			}
		}
		close(eventChan)
	}()

	return eventChan
}

// ---------------------------------------------------------
// Run 相关实现
// ---------------------------------------------------------

func (e *EtcdLedger) SaveRun(ctx context.Context, run *model.Run) error {
	key := RunKeyPrefix + run.ID
	return e.putValue(ctx, key, run)
}

func (e *EtcdLedger) GetRun(ctx context.Context, id string) (*model.Run, error) {
	resp, err := e.client.Get(ctx, RunKeyPrefix+id)
	if err != nil {
		return nil, err
	}
	if len(resp.Kvs) == 0 {
		return nil, fmt.Errorf("run not found: %s", id)
	}

	var run model.Run
	if err := json.Unmarshal(resp.Kvs[0].Value, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// ---------------------------------------------------------
// Log 相关实现
// ---------------------------------------------------------

func (e *EtcdLedger) SaveJobLog(ctx context.Context, jobID string, logs string) error {
	key := LogKeyPrefix + jobID
	// 为了复用 putValue，我们把日志包成一个对象
	data := map[string]string{
		"job_id":  jobID,
		"content": logs,
	}
	return e.putValue(ctx, key, data)
}

func (e *EtcdLedger) GetJobLog(ctx context.Context, jobID string) (string, error) {
	key := LogKeyPrefix + jobID
	resp, err := e.client.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if len(resp.Kvs) == 0 {
		return "", fmt.Errorf("log not found for job %s", jobID)
	}

	// 反序列化
	var data map[string]string
	if err := json.Unmarshal(resp.Kvs[0].Value, &data); err != nil {
		return "", err
	}
	return data["content"], nil
}

// ---------------------------------------------------------
// 辅助方法 (Helpers)
// ---------------------------------------------------------

// putValue 封装通用的 JSON 序列化 + Put 操作
func (e *EtcdLedger) putValue(ctx context.Context, key string, val interface{}) error {
	bytes, err := json.Marshal(val)
	if err != nil {
		return err
	}
	_, err = e.client.Put(ctx, key, string(bytes))
	return err
}

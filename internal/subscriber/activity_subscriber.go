package subscriber

import (
	"context"
	"encoding/json"

	"github.com/langly/backend/internal/eventbus"
	"github.com/langly/backend/internal/model"
	"github.com/langly/backend/internal/repository"
	"k8s.io/klog/v2"
)

// ActivityEventSubscriber 活动事件订阅者，将事件持久化到活动日志
type ActivityEventSubscriber struct {
	activityRepo repository.ActivityRepository
}

func NewActivityEventSubscriber(activityRepo repository.ActivityRepository) *ActivityEventSubscriber {
	return &ActivityEventSubscriber{activityRepo: activityRepo}
}

func (s *ActivityEventSubscriber) Register(bus *eventbus.Bus) {
	if bus == nil {
		return
	}
	bus.Subscribe(eventbus.ActivityEventRecorded, s.handleRecorded)
}

func (s *ActivityEventSubscriber) handleRecorded(ctx context.Context, event eventbus.ActivityEvent) error {
	var metadata string
	if len(event.Metadata) > 0 {
		data, err := json.Marshal(event.Metadata)
		if err != nil {
			klog.Warningf("活动事件元数据序列化失败: source=%s, error=%v", event.Source, err)
		} else {
			metadata = string(data)
		}
	}

	entry := &model.ActivityLog{
		Source:    event.Source,
		EventType: event.EventType,
		Summary:   event.Summary,
		Metadata:  metadata,
	}
	if err := s.activityRepo.Create(entry); err != nil {
		klog.Errorf("活动事件持久化失败: source=%s, type=%s, error=%v", event.Source, event.EventType, err)
		return err
	}
	klog.V(6).Infof("活动事件已记录: source=%s, type=%s", event.Source, event.EventType)
	return nil
}

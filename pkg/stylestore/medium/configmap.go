package medium

import (
	"context"
	"fmt"
	"sort"
	"time"

	corev1 "k8s.io/api/core/v1"
	k8serrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/util/retry"

	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
)

const (
	// ConfigMapDataKey is the binaryData key holding the encoded style.
	ConfigMapDataKey = "style"

	ManagedByLabel = "app.kubernetes.io/managed-by"
	ManagedByValue = "stylestore"

	DefaultConfigMapTimeout = 15 * time.Second
)

// ConfigMap stores each record in its own ConfigMap in one namespace.
// Locations are ConfigMap names. An update replaces the whole object through
// the API server, so watchers and readers never see a partial payload.
type ConfigMap struct {
	client    kubernetes.Interface
	namespace string
	timeout   time.Duration
}

func NewConfigMap(client kubernetes.Interface, namespace string, timeout time.Duration) *ConfigMap {
	if timeout <= 0 {
		timeout = DefaultConfigMapTimeout
	}
	return &ConfigMap{client: client, namespace: namespace, timeout: timeout}
}

func (c *ConfigMap) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.timeout)
}

func (c *ConfigMap) wrap(err error, operation, name string) error {
	return fmt.Errorf("%w: %w: configmap %s %s/%s: %w", apperrors.ErrStorage, apperrors.ErrKubernetes, operation, c.namespace, name, err)
}

func (c *ConfigMap) get(ctx context.Context, name string) (*corev1.ConfigMap, error) {
	return c.client.CoreV1().ConfigMaps(c.namespace).Get(ctx, name, metav1.GetOptions{})
}

func payload(cm *corev1.ConfigMap) ([]byte, bool) {
	if data, ok := cm.BinaryData[ConfigMapDataKey]; ok {
		return data, true
	}
	if data, ok := cm.Data[ConfigMapDataKey]; ok {
		return []byte(data), true
	}
	return nil, false
}

func (c *ConfigMap) Exists(location string) (bool, error) {
	ctx, cancel := c.requestContext()
	defer cancel()

	cm, err := c.get(ctx, location)
	if k8serrors.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, c.wrap(err, "get", location)
	}
	_, ok := payload(cm)
	return ok, nil
}

func (c *ConfigMap) Read(location string) ([]byte, error) {
	ctx, cancel := c.requestContext()
	defer cancel()

	cm, err := c.get(ctx, location)
	if k8serrors.IsNotFound(err) {
		return nil, apperrors.WrapNotFound(err, "configmap "+c.namespace+"/"+location)
	}
	if err != nil {
		return nil, c.wrap(err, "get", location)
	}
	data, ok := payload(cm)
	if !ok {
		return nil, fmt.Errorf("%w: configmap %s/%s has no %q key", apperrors.ErrNotFound, c.namespace, location, ConfigMapDataKey)
	}
	return copyBytes(data), nil
}

// Replace creates or updates the ConfigMap. Optimistic-concurrency conflicts
// with another writer are retried; the last successful update wins.
func (c *ConfigMap) Replace(location string, data []byte) error {
	ctx, cancel := c.requestContext()
	defer cancel()

	retriable := func(err error) bool {
		return k8serrors.IsConflict(err) || k8serrors.IsAlreadyExists(err)
	}

	err := retry.OnError(retry.DefaultRetry, retriable, func() error {
		configMaps := c.client.CoreV1().ConfigMaps(c.namespace)

		existing, err := configMaps.Get(ctx, location, metav1.GetOptions{})
		if k8serrors.IsNotFound(err) {
			cm := &corev1.ConfigMap{
				ObjectMeta: metav1.ObjectMeta{
					Name:      location,
					Namespace: c.namespace,
					Labels:    map[string]string{ManagedByLabel: ManagedByValue},
				},
				BinaryData: map[string][]byte{ConfigMapDataKey: copyBytes(data)},
			}
			_, err = configMaps.Create(ctx, cm, metav1.CreateOptions{})
			return err
		}
		if err != nil {
			return err
		}

		cm := existing.DeepCopy()
		if cm.Labels == nil {
			cm.Labels = map[string]string{}
		}
		cm.Labels[ManagedByLabel] = ManagedByValue
		if cm.BinaryData == nil {
			cm.BinaryData = map[string][]byte{}
		}
		cm.BinaryData[ConfigMapDataKey] = copyBytes(data)
		delete(cm.Data, ConfigMapDataKey)

		_, err = configMaps.Update(ctx, cm, metav1.UpdateOptions{})
		return err
	})
	if err != nil {
		return c.wrap(err, "replace", location)
	}
	return nil
}

func (c *ConfigMap) Remove(location string) error {
	ctx, cancel := c.requestContext()
	defer cancel()

	err := c.client.CoreV1().ConfigMaps(c.namespace).Delete(ctx, location, metav1.DeleteOptions{})
	if err != nil && !k8serrors.IsNotFound(err) {
		return c.wrap(err, "delete", location)
	}
	return nil
}

func (c *ConfigMap) List() ([]string, error) {
	ctx, cancel := c.requestContext()
	defer cancel()

	selector := labels.SelectorFromSet(labels.Set{ManagedByLabel: ManagedByValue})
	list, err := c.client.CoreV1().ConfigMaps(c.namespace).List(ctx, metav1.ListOptions{LabelSelector: selector.String()})
	if err != nil {
		return nil, c.wrap(err, "list", "")
	}

	var locations []string
	for _, cm := range list.Items {
		if _, ok := payload(&cm); ok {
			locations = append(locations, cm.Name)
		}
	}
	sort.Strings(locations)
	return locations, nil
}

var (
	_ Medium = (*ConfigMap)(nil)
	_ Lister = (*ConfigMap)(nil)
)

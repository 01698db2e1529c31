package server

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
)

// GetKubernetesConfig prefers the in-cluster config and falls back to
// $KUBECONFIG or ~/.kube/config.
func GetKubernetesConfig() (*rest.Config, error) {
	config, err := rest.InClusterConfig()
	if err != nil {

		kubeconfig := os.Getenv("KUBECONFIG")
		if kubeconfig == "" {
			kubeconfig = clientcmd.RecommendedHomeFile
		}
		config, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
		if err != nil {
			return nil, fmt.Errorf("%w: kubernetes get config: failed to get Kubernetes config: %w", apperrors.ErrKubernetes, err)
		}
	}
	return config, nil
}

// NewKubernetesClient creates the clientset used by the ConfigMap backend.
func NewKubernetesClient(logger logr.Logger) (kubernetes.Interface, error) {
	logger.Info("Setting up Kubernetes client")
	kubeConfig, err := GetKubernetesConfig()
	if err != nil {
		return nil, err
	}

	clientset, err := kubernetes.NewForConfig(kubeConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Kubernetes clientset: %w", apperrors.ErrKubernetes, err)
	}
	return clientset, nil
}

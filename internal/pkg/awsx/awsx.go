package awsx

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"github.com/aws/aws-xray-sdk-go/xray"
)

// LoadConfig loads the shared AWS configuration for the given region.
// With tracing enabled every SDK call is recorded as an X-Ray subsegment.
func LoadConfig(ctx context.Context, region string, tracing bool) (aws.Config, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if tracing {
		awsv2.AWSV2Instrumentor(&cfg.APIOptions)
	}

	return cfg, nil
}

// ConfigureTracing points the X-Ray recorder at the local daemon.
// Missing segments are logged instead of panicking, so untraced code paths
// (CLI commands, background work) still run.
func ConfigureTracing(daemonAddr, serviceVersion string) error {
	if err := xray.Configure(xray.Config{
		DaemonAddr:     daemonAddr,
		ServiceVersion: serviceVersion,
	}); err != nil {
		return fmt.Errorf("failed to configure X-Ray: %w", err)
	}
	return os.Setenv("AWS_XRAY_CONTEXT_MISSING", "LOG_ERROR")
}

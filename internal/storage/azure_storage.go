package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// DefaultBlobEndpoint is the public blob service URL, %s being the account
const DefaultBlobEndpoint = "https://%s" + azureBlobHostSuffix

// AzureBlobLoader downloads chart images stored in Azure Blob Storage
type AzureBlobLoader struct {
	account  string
	endpoint string
	client   *azblob.Client
}

// NewAzureBlobLoader creates a loader for one storage account. Without a
// key the client is anonymous and only public containers are readable.
// endpoint is the service URL format with %s for the account; empty means
// DefaultBlobEndpoint.
func NewAzureBlobLoader(accountName, accountKey, endpoint string) (ImageLoader, error) {
	if endpoint == "" {
		endpoint = DefaultBlobEndpoint
	}
	if accountKey == "" {
		return &AzureBlobLoader{endpoint: endpoint}, nil
	}

	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("invalid azure credential: %w", err)
	}

	account := strings.ToLower(accountName)
	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL(endpoint, account), credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create azure client: %w", err)
	}
	return &AzureBlobLoader{account: account, endpoint: endpoint, client: client}, nil
}

func serviceURL(endpoint, account string) string {
	return fmt.Sprintf(endpoint, account)
}

// ParseBlobURL splits https://<account>.blob.core.windows.net/<container>/<blob>
func ParseBlobURL(blobURL string) (account, container, blob string, err error) {
	parsed, err := url.Parse(blobURL)
	if err != nil {
		return "", "", "", fmt.Errorf("invalid blob URL: %w", err)
	}

	host := strings.ToLower(parsed.Hostname())
	if !strings.HasSuffix(host, azureBlobHostSuffix) {
		return "", "", "", fmt.Errorf("invalid blob URL: host %q is not a blob endpoint", parsed.Host)
	}
	account = strings.TrimSuffix(host, azureBlobHostSuffix)

	container, blob, ok := strings.Cut(strings.TrimPrefix(parsed.Path, "/"), "/")
	if !ok || container == "" || blob == "" {
		return "", "", "", fmt.Errorf("invalid blob URL: expected /<container>/<blob>, got %q", parsed.Path)
	}
	return account, container, blob, nil
}

func (s *AzureBlobLoader) Load(ctx context.Context, blobURL string) (*Chart, error) {
	account, container, blob, err := ParseBlobURL(blobURL)
	if err != nil {
		return nil, err
	}

	// the shared key only signs requests for its own account
	client := s.client
	if client == nil || account != s.account {
		client, err = azblob.NewClientWithNoCredential(serviceURL(s.endpoint, account), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create azure client: %w", err)
		}
	}

	downloadResponse, err := client.DownloadStream(ctx, container, blob, nil)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}

	retryReader := downloadResponse.Body
	defer retryReader.Close()

	return decodeChart(blobURL, retryReader)
}

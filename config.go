package blog

import "github.com/goliatone/go-blog/internal/runtimeconfig"

var (
	ErrAppEnvInvalid           = runtimeconfig.ErrAppEnvInvalid
	ErrContentDirRequired      = runtimeconfig.ErrContentDirRequired
	ErrContentExtensionInvalid = runtimeconfig.ErrContentExtensionInvalid
	ErrContentOutputRequired   = runtimeconfig.ErrContentOutputRequired
	ErrSiteBaseURLInvalid      = runtimeconfig.ErrSiteBaseURLInvalid
	ErrFeedMaxItemsInvalid     = runtimeconfig.ErrFeedMaxItemsInvalid
	ErrFeedPublicDirRequired   = runtimeconfig.ErrFeedPublicDirRequired
	ErrCacheCapacityInvalid    = runtimeconfig.ErrCacheCapacityInvalid
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrRenderTimeoutInvalid    = runtimeconfig.ErrRenderTimeoutInvalid
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrServerAddrRequired      = runtimeconfig.ErrServerAddrRequired
)

type (
	Config        = runtimeconfig.Config
	AppConfig     = runtimeconfig.AppConfig
	ContentConfig = runtimeconfig.ContentConfig
	SiteConfig    = runtimeconfig.SiteConfig
	FeedConfig    = runtimeconfig.FeedConfig
	RenderConfig  = runtimeconfig.RenderConfig
	LoggingConfig = runtimeconfig.LoggingConfig
	ServerConfig  = runtimeconfig.ServerConfig
	LoadOptions   = runtimeconfig.LoadOptions
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads .env files, blog.yaml and BLOG_* variables over the defaults.
func LoadConfig(opts LoadOptions) (Config, error) {
	return runtimeconfig.Load(opts)
}

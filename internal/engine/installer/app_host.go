package installer

import (
	"path/filepath"

	"go.trai.ch/podgen/internal/core/domain"
)

const appHostFrameworkSearchPaths = `$(inherited) "$(PLATFORM_DIR)/Developer/Library/Frameworks"`

const uiKitMain = `#import <UIKit/UIKit.h>

@interface CPTestAppHostAppDelegate : UIResponder <UIApplicationDelegate>

@property (nonatomic, strong) UIWindow *window;

@end

@implementation CPTestAppHostAppDelegate

- (BOOL)application:(UIApplication *)application didFinishLaunchingWithOptions:(NSDictionary *)launchOptions
{
    self.window = [[UIWindow alloc] initWithFrame:[UIScreen mainScreen].bounds];
    self.window.rootViewController = [UIViewController new];
    [self.window makeKeyAndVisible];
    return YES;
}

@end

int main(int argc, char *argv[])
{
    @autoreleasepool
    {
        return UIApplicationMain(argc, argv, nil, NSStringFromClass([CPTestAppHostAppDelegate class]));
    }
}
`

const cocoaMain = `#import <Cocoa/Cocoa.h>

int main(int argc, const char * argv[]) {
    return NSApplicationMain(argc, argv);
}
`

const uiKitSwiftMain = `import UIKit

@UIApplicationMain
class AppDelegate: UIResponder, UIApplicationDelegate {
    var window: UIWindow?
}
`

const cocoaSwiftMain = `import Cocoa

_ = NSApplicationMain(CommandLine.argc, CommandLine.unsafeArgv)
`

// appHostSource renders the entry point of an app host. The path is relative to the
// sandbox root.
func appHostSource(label string, platform domain.PlatformName, swift bool) domain.Document {
	var name, content string
	switch {
	case swift && platform == domain.PlatformOSX:
		name, content = "main.swift", cocoaSwiftMain
	case swift:
		name, content = "main.swift", uiKitSwiftMain
	case platform == domain.PlatformOSX:
		name, content = "main.m", cocoaMain
	default:
		name, content = "main.m", uiKitMain
	}
	return domain.Document{Path: filepath.Join(label, name), Content: []byte(content)}
}

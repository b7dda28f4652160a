//go:build darwin

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework AppKit
#import <Cocoa/Cocoa.h>
#import <AppKit/AppKit.h>

int
SetActivationPolicy(void) {
    [NSApp setActivationPolicy:NSApplicationActivationPolicyAccessory];
    return 0;
}

void activateApp() {
    [NSApp activateIgnoringOtherApps:YES];
}
*/
import "C"

// HideFromDock turns the widget into an accessory app without a Dock icon
func HideFromDock() {
	C.SetActivationPolicy()
}

// ActivateApp brings the settings and details windows to the front
func ActivateApp() {
	C.activateApp()
}

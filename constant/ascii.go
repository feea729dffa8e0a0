package constant

// AsciiArtLogo is the application's ASCII art banner.
const AsciiArtLogo = `
 _            _  __
| |_ _____   _(_)/ _|_   _
| __/ _ \ \ / / | |_| | | |
| ||  __/\ V /| |  _| |_| |
 \__\___| \_/ |_|_|  \__, |
                     |___/`

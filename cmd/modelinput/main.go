// Command modelinput renders HTML form inputs from database column metadata.
package main

func main() {
	Execute()
}

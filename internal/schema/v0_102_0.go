package schema

// schemaV0_102_0 is the schema for CrewAI 0.102.0, the earliest supported release.
func schemaV0_102_0() *VersionedSchema {
	return &VersionedSchema{
		Version: "0.102.0",
		Agent: RecordSchema{
			RequiredFields: []string{"role", "goal", "backstory"},
			OptionalFields: []FieldDefinition{
				{Name: "role", Type: OneOf(TypeString), Description: "The role or title of the agent that defines their responsibilities."},
				{Name: "goal", Type: OneOf(TypeString), Description: "The agent's primary objective or purpose within the crew."},
				{Name: "backstory", Type: OneOf(TypeString), Description: "Provides context and personality to the agent, enriching interactions."},
				{Name: "llm", Type: OneOf(TypeString, TypeObject), Description: `Language model that powers the agent. Defaults to the model specified in OPENAI_MODEL_NAME or "gpt-4".`},
				{Name: "tools", Type: OneOf(TypeArray), Description: "Capabilities or functions available to the agent. Defaults to an empty list."},
				{Name: "function_calling_llm", Type: OneOf(TypeObject), Description: "Language model for tool calling, overrides crew's LLM if specified."},
				{Name: "max_iter", Type: OneOf(TypeNumber), Description: "Maximum iterations before the agent must provide its best answer. Default is 20."},
				{Name: "max_rpm", Type: OneOf(TypeNumber), Description: "Maximum requests per minute to avoid rate limits."},
				{Name: "max_execution_time", Type: OneOf(TypeNumber), Description: "Maximum time (in seconds) for task execution."},
				{Name: "memory", Type: OneOf(TypeBoolean), Description: "Whether the agent should maintain memory of interactions. Default is True."},
				{Name: "verbose", Type: OneOf(TypeBoolean), Description: "Enable detailed execution logs for debugging. Default is False."},
				{Name: "allow_delegation", Type: OneOf(TypeBoolean), Description: "Allow the agent to delegate tasks to other agents. Default is False."},
				{Name: "step_callback", Type: OneOf(TypeObject), Description: "Function called after each agent step, overrides crew callback."},
				{Name: "cache", Type: OneOf(TypeBoolean), Description: "Enable caching for tool usage. Default is True."},
				{Name: "system_template", Type: OneOf(TypeString), Description: "Custom system prompt template for the agent."},
				{Name: "prompt_template", Type: OneOf(TypeString), Description: "Custom prompt template for the agent."},
				{Name: "response_template", Type: OneOf(TypeString), Description: "Custom response template for the agent."},
				{Name: "allow_code_execution", Type: OneOf(TypeBoolean), Description: "Enable code execution for the agent. Default is False."},
				{Name: "max_retry_limit", Type: OneOf(TypeNumber), Description: "Maximum number of retries when an error occurs. Default is 2."},
				{Name: "respect_context_window", Type: OneOf(TypeBoolean), Description: "Keep messages under context window size by summarizing. Default is True."},
				{Name: "code_execution_mode", Type: OneOf(TypeString), Description: "Mode for code execution: 'safe' (using Docker) or 'unsafe' (direct). Default is 'safe'."},
				{Name: "embedder", Type: OneOf(TypeObject), Description: "Configuration for the embedder used by the agent."},
				{Name: "knowledge_sources", Type: OneOf(TypeArray), Description: "Knowledge sources available to the agent."},
				{Name: "use_system_prompt", Type: OneOf(TypeBoolean), Description: "Whether to use system prompt (for o1 model support). Default is True."},
			},
		},
		Task: RecordSchema{
			RequiredFields: []string{"description", "expected_output"},
			OptionalFields: []FieldDefinition{
				{Name: "description", Type: OneOf(TypeString), Description: "A clear, concise statement of what the task entails."},
				{Name: "expected_output", Type: OneOf(TypeString), Description: "A detailed description of what the task's completion looks like."},
				{Name: "name", Type: OneOf(TypeString), Description: "A name identifier for the task."},
				{Name: "agent", Type: OneOf(TypeString, TypeObject), Description: "The agent responsible for executing the task."},
				{Name: "tools", Type: OneOf(TypeArray), Description: "The tools/resources the agent is limited to use for this task."},
				{Name: "context", Type: OneOf(TypeArray), Description: "Other tasks whose outputs will be used as context for this task."},
				{Name: "async_execution", Type: OneOf(TypeBoolean), Description: "Whether the task should be executed asynchronously. Defaults to False."},
				{Name: "human_input", Type: OneOf(TypeBoolean), Description: "Whether the task should have a human review the final answer of the agent. Defaults to False."},
				{Name: "config", Type: OneOf(TypeObject), Description: "Task-specific configuration parameters."},
				{Name: "output_file", Type: OneOf(TypeString), Description: "File path for storing the task output."},
				{Name: "output_json", Type: OneOf(TypeObject), Description: "A Pydantic model to structure the JSON output."},
				{Name: "output_pydantic", Type: OneOf(TypeObject), Description: "A Pydantic model for task output."},
				{Name: "callback", Type: OneOf(TypeObject), Description: "Function/object to be executed after task completion."},
			},
		},
	}
}
